package scheduler

import (
	"testing"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/calendar"
	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

// juneDays 返回 2026 年 6 月的逐日序列，6 月 1 日是星期一
func juneDays(t *testing.T, atSea []domain.DateRange, holidays []time.Time) []domain.Day {
	t.Helper()
	days, err := calendar.BuildMonth(2026, time.June, atSea, holidays)
	require.NoError(t, err)
	return days
}

func assignmentsFor(bill *domain.WatchBill, watch domain.WatchType) []domain.Assignment {
	out := make([]domain.Assignment, 0)
	for _, a := range bill.Assignments {
		if a.Watch == watch {
			out = append(out, a)
		}
	}
	return out
}

func TestNewFailFast(t *testing.T) {
	roster := []*domain.Person{
		{ID: 1, FullName: "Ioannis Christodoulou", Rank: domain.RankSailor, IsActive: true, PrimaryWatch: domain.WatchBYF},
	}
	days := []domain.Day{{Date: date(2026, time.June, 1), InPort: true}}

	testCases := []struct {
		name   string
		cfg    *Config
		roster []*domain.Person
		prefs  []*domain.PreferenceEntry
	}{
		{name: "规则表为空", cfg: nil, roster: roster},
		{
			name: "间隔天数为负",
			cfg: &Config{GapDays: -1, WeekendCap: 2, HolidayCap: 1,
				MonthlyCaps: map[domain.Rank]int{domain.RankSailor: 15}},
			roster: roster,
		},
		{
			name:   "上限表为空",
			cfg:    &Config{GapDays: 2, WeekendCap: 2, HolidayCap: 1},
			roster: roster,
		},
		{
			name: "上限表引用未知军衔",
			cfg: &Config{GapDays: 2, WeekendCap: 2, HolidayCap: 1,
				MonthlyCaps: map[domain.Rank]int{domain.Rank("Admiral"): 4, domain.RankSailor: 15}},
			roster: roster,
		},
		{
			name: "上限不是正数",
			cfg: &Config{GapDays: 2, WeekendCap: 2, HolidayCap: 1,
				MonthlyCaps: map[domain.Rank]int{domain.RankSailor: 0}},
			roster: roster,
		},
		{
			name: "花名册中有未知军衔",
			cfg:  DefaultConfig(),
			roster: []*domain.Person{
				{ID: 1, FullName: "Unknown", Rank: domain.Rank("Cadet")},
			},
		},
		{
			name: "上限表没有覆盖花名册中的军衔",
			cfg: &Config{GapDays: 2, WeekendCap: 2, HolidayCap: 1,
				MonthlyCaps: map[domain.Rank]int{domain.RankSailor: 15}},
			roster: []*domain.Person{
				{ID: 1, FullName: "Nikolaos Georgiou", Rank: domain.RankSeaman},
			},
		},
		{
			name: "人员配置了未知更种",
			cfg:  DefaultConfig(),
			roster: []*domain.Person{
				{ID: 1, FullName: "Ioannis Christodoulou", Rank: domain.RankSailor, IsActive: true, PrimaryWatch: domain.WatchType("ZZ")},
			},
		},
		{
			name:   "偏好记录引用未知更种",
			cfg:    DefaultConfig(),
			roster: roster,
			prefs: []*domain.PreferenceEntry{
				{PersonID: 1, Date: date(2026, time.June, 1), Watch: domain.WatchType("ZZ")},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg, 2026, time.June, tc.roster, days, nil, nil, tc.prefs)
			require.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestScheduleCaptainNeverAssigned(t *testing.T) {
	roster := []*domain.Person{
		{ID: 1, FullName: "Nikolaos Papadopoulos", Rank: domain.RankCommander, Duty: domain.DutyCaptain, IsActive: true, PrimaryWatch: domain.WatchAF},
		{ID: 2, FullName: "Christos Christodoulou", Rank: domain.RankEnsign, IsActive: true, PrimaryWatch: domain.WatchAF},
		{ID: 3, FullName: "Ioannis Christodoulou", Rank: domain.RankSailor, IsActive: true, PrimaryWatch: domain.WatchYF},
	}

	s, err := New(DefaultConfig(), 2026, time.June, roster, juneDays(t, nil, nil), nil, nil, nil)
	require.NoError(t, err)

	bill, err := s.Schedule()
	require.NoError(t, err)

	for _, a := range bill.Assignments {
		require.NotEqual(t, int64(1), a.PersonID)
	}
}

func TestScheduleAFRotationYoungestFirst(t *testing.T) {
	lieutenant := &domain.Person{ID: 1, FullName: "Dimitrios Georgiou", Rank: domain.RankLieutenant, IsActive: true, PrimaryWatch: domain.WatchAF}
	ensign := &domain.Person{ID: 2, FullName: "Christos Christodoulou", Rank: domain.RankEnsign, IsActive: true, PrimaryWatch: domain.WatchAF}

	// 只排 6 月 1 日（周一）到 6 日（周六）
	days := juneDays(t, nil, nil)[:6]

	s, err := New(DefaultConfig(), 2026, time.June, []*domain.Person{lieutenant, ensign}, days, nil, nil, nil)
	require.NoError(t, err)

	bill, err := s.Schedule()
	require.NoError(t, err)

	af := assignmentsFor(bill, domain.WatchAF)
	require.Len(t, af, 4)

	// 资历最浅的少尉先站，间隔规则逼出轮换：2 号、5 号轮到中尉，3 号、6 号无人可排
	require.Equal(t, int64(2), af[0].PersonID)
	require.Equal(t, 1, af[0].Date.Day())
	require.Equal(t, int64(1), af[1].PersonID)
	require.Equal(t, 2, af[1].Date.Day())
	require.Equal(t, int64(2), af[2].PersonID)
	require.Equal(t, 4, af[2].Date.Day())
	require.Equal(t, int64(1), af[3].PersonID)
	require.Equal(t, 5, af[3].Date.Day())

	unfilledDays := make(map[int]domain.UnfilledReason)
	for _, u := range bill.Unfilled {
		if u.Watch == domain.WatchAF {
			unfilledDays[u.Date.Day()] = u.Reason
		}
	}
	require.Equal(t, domain.UnfilledNoCandidate, unfilledDays[3])
	require.Equal(t, domain.UnfilledNoCandidate, unfilledDays[6])
}

func TestScheduleFairnessJuniorFirst(t *testing.T) {
	roster := []*domain.Person{
		{ID: 1, FullName: "Andreas Stavrou", Rank: domain.RankPettyOfficer, IsActive: true, PrimaryWatch: domain.WatchYF},
		{ID: 2, FullName: "Nikolaos Georgiou", Rank: domain.RankSeaman, IsActive: true, PrimaryWatch: domain.WatchYF},
		{ID: 3, FullName: "Ioannis Christodoulou", Rank: domain.RankSailor, IsActive: true, PrimaryWatch: domain.WatchYF},
	}

	days := juneDays(t, nil, nil)[:4]

	s, err := New(DefaultConfig(), 2026, time.June, roster, days, nil, nil, nil)
	require.NoError(t, err)

	bill, err := s.Schedule()
	require.NoError(t, err)

	yf := assignmentsFor(bill, domain.WatchYF)
	require.Len(t, yf, 4)

	// 计数相同的情况下资历浅者优先，间隔满足后水兵再次轮到
	require.Equal(t, []int64{3, 2, 1, 3}, []int64{yf[0].PersonID, yf[1].PersonID, yf[2].PersonID, yf[3].PersonID})
}

func TestSchedulePreferenceWithinSameCount(t *testing.T) {
	a := &domain.Person{ID: 1, FullName: "Evangelos Makris", Rank: domain.RankSailor, IsActive: true, PrimaryWatch: domain.WatchYF}
	b := &domain.Person{ID: 2, FullName: "Spyridon Alexiou", Rank: domain.RankSailor, IsActive: true, PrimaryWatch: domain.WatchYF}

	days := juneDays(t, nil, nil)[:1]

	t.Run("没有偏好时按姓名字典序", func(t *testing.T) {
		s, err := New(DefaultConfig(), 2026, time.June, []*domain.Person{a, b}, days, nil, nil, nil)
		require.NoError(t, err)

		bill, err := s.Schedule()
		require.NoError(t, err)

		yf := assignmentsFor(bill, domain.WatchYF)
		require.Len(t, yf, 1)
		require.Equal(t, int64(1), yf[0].PersonID)
	})

	t.Run("偏好在同计数里占先", func(t *testing.T) {
		prefs := []*domain.PreferenceEntry{
			{PersonID: 2, Date: date(2026, time.June, 1), Watch: domain.WatchYF},
		}

		s, err := New(DefaultConfig(), 2026, time.June, []*domain.Person{a, b}, days, nil, nil, prefs)
		require.NoError(t, err)

		bill, err := s.Schedule()
		require.NoError(t, err)

		yf := assignmentsFor(bill, domain.WatchYF)
		require.Len(t, yf, 1)
		require.Equal(t, int64(2), yf[0].PersonID)
	})
}

func TestScheduleWeekendCap(t *testing.T) {
	sailor := &domain.Person{ID: 1, FullName: "Ioannis Christodoulou", Rank: domain.RankSailor, IsActive: true, PrimaryWatch: domain.WatchYF}

	// 只排 6 月的四个周六：6、13、20、27 号
	all := juneDays(t, nil, nil)
	days := make([]domain.Day, 0, 4)
	for _, d := range all {
		if d.Date.Weekday() == time.Saturday {
			days = append(days, d)
		}
	}
	require.Len(t, days, 4)

	s, err := New(DefaultConfig(), 2026, time.June, []*domain.Person{sailor}, days, nil, nil, nil)
	require.NoError(t, err)

	bill, err := s.Schedule()
	require.NoError(t, err)

	yf := assignmentsFor(bill, domain.WatchYF)
	require.Len(t, yf, 2)
	require.Equal(t, 6, yf[0].Date.Day())
	require.Equal(t, 13, yf[1].Date.Day())
}

func TestScheduleHolidayCap(t *testing.T) {
	sailor := &domain.Person{ID: 1, FullName: "Ioannis Christodoulou", Rank: domain.RankSailor, IsActive: true, PrimaryWatch: domain.WatchYF}

	holidays := []time.Time{date(2026, time.June, 1), date(2026, time.June, 10)}
	all := juneDays(t, nil, holidays)
	days := []domain.Day{all[0], all[9]}

	s, err := New(DefaultConfig(), 2026, time.June, []*domain.Person{sailor}, days, nil, nil, nil)
	require.NoError(t, err)

	bill, err := s.Schedule()
	require.NoError(t, err)

	yf := assignmentsFor(bill, domain.WatchYF)
	require.Len(t, yf, 1)
	require.Equal(t, 1, yf[0].Date.Day())
}

func TestScheduleMonthlyCap(t *testing.T) {
	cfg := &Config{
		GapDays:    0,
		WeekendCap: 2,
		HolidayCap: 1,
		MonthlyCaps: map[domain.Rank]int{
			domain.RankSailor: 1,
		},
	}

	sailor := &domain.Person{ID: 1, FullName: "Ioannis Christodoulou", Rank: domain.RankSailor, IsActive: true, PrimaryWatch: domain.WatchYF}
	days := juneDays(t, nil, nil)[:3]

	s, err := New(cfg, 2026, time.June, []*domain.Person{sailor}, days, nil, nil, nil)
	require.NoError(t, err)

	bill, err := s.Schedule()
	require.NoError(t, err)

	require.Len(t, assignmentsFor(bill, domain.WatchYF), 1)
}

func TestScheduleAtSeaDaysBlankAllWatches(t *testing.T) {
	sailor := &domain.Person{ID: 1, FullName: "Ioannis Christodoulou", Rank: domain.RankSailor, IsActive: true, PrimaryWatch: domain.WatchYF}

	atSea := []domain.DateRange{
		{Start: date(2026, time.June, 10), End: date(2026, time.June, 12)},
	}
	all := juneDays(t, atSea, nil)
	days := all[8:13] // 6 月 9 日到 13 日

	s, err := New(DefaultConfig(), 2026, time.June, []*domain.Person{sailor}, days, nil, nil, nil)
	require.NoError(t, err)

	bill, err := s.Schedule()
	require.NoError(t, err)

	// 在航的三天每个更种都是空更，原因是在航
	atSeaUnfilled := make(map[int][]domain.WatchType)
	for _, u := range bill.Unfilled {
		if u.Reason == domain.UnfilledAtSea {
			atSeaUnfilled[u.Date.Day()] = append(atSeaUnfilled[u.Date.Day()], u.Watch)
		}
	}
	require.Len(t, atSeaUnfilled, 3)
	for day := 10; day <= 12; day++ {
		require.Len(t, atSeaUnfilled[day], len(domain.WatchTypes))
	}

	// 在航前后照常排更
	yf := assignmentsFor(bill, domain.WatchYF)
	require.Len(t, yf, 2)
	require.Equal(t, 9, yf[0].Date.Day())
	require.Equal(t, 13, yf[1].Date.Day())
}

func TestScheduleFullMonthUnavailability(t *testing.T) {
	sailor := &domain.Person{ID: 1, FullName: "Ioannis Christodoulou", Rank: domain.RankSailor, IsActive: true, PrimaryWatch: domain.WatchYF}

	unavailable := []*domain.UnavailabilityEntry{
		{PersonID: 1, Range: domain.DateRange{
			Start: date(2026, time.June, 1), End: date(2026, time.June, 30),
		}},
	}

	days := juneDays(t, nil, nil)
	s, err := New(DefaultConfig(), 2026, time.June, []*domain.Person{sailor}, days, nil, unavailable, nil)
	require.NoError(t, err)

	bill, err := s.Schedule()
	require.NoError(t, err)

	require.Empty(t, bill.Assignments)
	require.Len(t, bill.Unfilled, len(days)*len(domain.WatchTypes))
	for _, u := range bill.Unfilled {
		require.Equal(t, domain.UnfilledNoCandidate, u.Reason)
	}
}

func TestSchedulePrimaryBeforeAlternate(t *testing.T) {
	holder := &domain.Person{ID: 1, FullName: "Andreas Stavrou", Rank: domain.RankPettyOfficer, IsActive: true, PrimaryWatch: domain.WatchYF}
	backup := &domain.Person{ID: 2, FullName: "Ioannis Christodoulou", Rank: domain.RankSailor, IsActive: true, PrimaryWatch: domain.WatchBYF, AlternateWatch: domain.WatchYF}

	days := juneDays(t, nil, nil)[:1]

	s, err := New(DefaultConfig(), 2026, time.June, []*domain.Person{holder, backup}, days, nil, nil, nil)
	require.NoError(t, err)

	bill, err := s.Schedule()
	require.NoError(t, err)

	// 水兵虽然资历更浅，但只是 YF 的备更种持有者，主更种持有者优先
	yf := assignmentsFor(bill, domain.WatchYF)
	require.Len(t, yf, 1)
	require.Equal(t, int64(1), yf[0].PersonID)

	byf := assignmentsFor(bill, domain.WatchBYF)
	require.Len(t, byf, 1)
	require.Equal(t, int64(2), byf[0].PersonID)
}

func TestScheduleWeekdayOnlyDutyAsFallback(t *testing.T) {
	lieutenant := &domain.Person{ID: 1, FullName: "Dimitrios Georgiou", Rank: domain.RankLieutenant, IsActive: true, PrimaryWatch: domain.WatchAF}
	dpo := &domain.Person{ID: 2, FullName: "Christos Christodoulou", Rank: domain.RankEnsign, Duty: domain.DutyDPO, IsActive: true, PrimaryWatch: domain.WatchAF}

	t.Run("工作日普通职务优先于值更官", func(t *testing.T) {
		days := juneDays(t, nil, nil)[:1] // 周一
		s, err := New(DefaultConfig(), 2026, time.June, []*domain.Person{lieutenant, dpo}, days, nil, nil, nil)
		require.NoError(t, err)

		bill, err := s.Schedule()
		require.NoError(t, err)

		af := assignmentsFor(bill, domain.WatchAF)
		require.Len(t, af, 1)
		// 值更官虽然资历更浅，但被分到兜底层，普通职务的中尉先站
		require.Equal(t, int64(1), af[0].PersonID)
	})

	t.Run("周末值更官不排AF", func(t *testing.T) {
		days := juneDays(t, nil, nil)[5:6] // 周六
		s, err := New(DefaultConfig(), 2026, time.June, []*domain.Person{dpo}, days, nil, nil, nil)
		require.NoError(t, err)

		bill, err := s.Schedule()
		require.NoError(t, err)

		require.Empty(t, assignmentsFor(bill, domain.WatchAF))
	})
}

func TestScheduleDeterministicAndRepeatable(t *testing.T) {
	roster := []*domain.Person{
		{ID: 1, FullName: "Georgios Nikolaou", Rank: domain.RankLieutenantCommander, Duty: domain.DutyExecutiveOfficer, IsActive: true, PrimaryWatch: domain.WatchAF},
		{ID: 2, FullName: "Dimitrios Georgiou", Rank: domain.RankLieutenant, IsActive: true, PrimaryWatch: domain.WatchAF},
		{ID: 3, FullName: "Christos Christodoulou", Rank: domain.RankEnsign, IsActive: true, PrimaryWatch: domain.WatchAF},
		{ID: 4, FullName: "Vasileios Antoniou", Rank: domain.RankWarrantOfficer, IsActive: true, PrimaryWatch: domain.WatchYF, AlternateWatch: domain.WatchAF},
		{ID: 5, FullName: "Athanasios Karagiannis", Rank: domain.RankChiefPettyOfficer, IsActive: true, PrimaryWatch: domain.WatchYF},
		{ID: 6, FullName: "Andreas Stavrou", Rank: domain.RankPettyOfficer, IsActive: true, PrimaryWatch: domain.WatchYFM, AlternateWatch: domain.WatchYF},
		{ID: 7, FullName: "Nikolaos Georgiou", Rank: domain.RankSeaman, IsActive: true, PrimaryWatch: domain.WatchBYFM, AlternateWatch: domain.WatchYFM},
		{ID: 8, FullName: "Ioannis Christodoulou", Rank: domain.RankSailor, IsActive: true, PrimaryWatch: domain.WatchBYF, AlternateWatch: domain.WatchBYFM},
		{ID: 9, FullName: "Konstantinos Vasileiou", Rank: domain.RankSailor, IsActive: true, PrimaryWatch: domain.WatchBYF},
	}

	leaves := []*domain.LeaveRecord{
		{PersonID: 5, Type: domain.LeaveRegular, Range: domain.DateRange{
			Start: date(2026, time.June, 8), End: date(2026, time.June, 14),
		}},
	}
	atSea := []domain.DateRange{
		{Start: date(2026, time.June, 20), End: date(2026, time.June, 22)},
	}
	holidays := []time.Time{date(2026, time.June, 25)}

	days := juneDays(t, atSea, holidays)

	s1, err := New(DefaultConfig(), 2026, time.June, roster, days, leaves, nil, nil)
	require.NoError(t, err)

	first, err := s1.Schedule()
	require.NoError(t, err)

	// 同一个调度器重跑
	again, err := s1.Schedule()
	require.NoError(t, err)
	require.Equal(t, first, again)

	// 相同输入构造新的调度器
	s2, err := New(DefaultConfig(), 2026, time.June, roster, days, leaves, nil, nil)
	require.NoError(t, err)

	second, err := s2.Schedule()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestScheduleStatsConsistentWithAssignments(t *testing.T) {
	roster := []*domain.Person{
		{ID: 1, FullName: "Christos Christodoulou", Rank: domain.RankEnsign, IsActive: true, PrimaryWatch: domain.WatchAF},
		{ID: 2, FullName: "Athanasios Karagiannis", Rank: domain.RankChiefPettyOfficer, IsActive: true, PrimaryWatch: domain.WatchYF},
		{ID: 3, FullName: "Ioannis Christodoulou", Rank: domain.RankSailor, IsActive: true, PrimaryWatch: domain.WatchBYF},
	}

	s, err := New(DefaultConfig(), 2026, time.June, roster, juneDays(t, nil, nil), nil, nil, nil)
	require.NoError(t, err)

	bill, err := s.Schedule()
	require.NoError(t, err)

	sum := 0
	for _, st := range bill.Stats.PerPerson {
		sum += st.Total
	}
	require.Equal(t, len(bill.Assignments), sum)
	require.Equal(t, len(bill.Assignments), bill.Stats.Overall.Total)

	// 每个 (日期, 更种) 至多出现一次
	seen := make(map[string]bool)
	for _, a := range bill.Assignments {
		key := a.Date.Format(time.DateOnly) + "/" + string(a.Watch)
		require.False(t, seen[key])
		seen[key] = true
	}
}

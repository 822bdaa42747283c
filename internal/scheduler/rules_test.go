package scheduler

import (
	"testing"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestIsEligibleHardRules(t *testing.T) {
	engine := &ruleEngine{cfg: DefaultConfig()}

	weekday := domain.Day{Date: date(2026, time.June, 1), InPort: true}
	saturday := domain.Day{Date: date(2026, time.June, 6), InPort: true, IsWeekend: true}
	holiday := domain.Day{Date: date(2026, time.June, 25), InPort: true, IsHoliday: true}

	sailor := &domain.Person{ID: 1, FullName: "Ioannis Christodoulou", Rank: domain.RankSailor, PrimaryWatch: domain.WatchBYF}

	t.Run("舰长永远不排更", func(t *testing.T) {
		captain := &domain.Person{ID: 2, FullName: "Nikolaos Papadopoulos", Rank: domain.RankCommander, Duty: domain.DutyCaptain}
		require.False(t, engine.isEligible(captain, weekday, newPersonCounters(), domain.WatchAF))
	})

	t.Run("副长周末不站AF更", func(t *testing.T) {
		xo := &domain.Person{ID: 3, FullName: "Georgios Nikolaou", Rank: domain.RankLieutenantCommander, Duty: domain.DutyExecutiveOfficer}
		require.False(t, engine.isEligible(xo, saturday, newPersonCounters(), domain.WatchAF))
		require.True(t, engine.isEligible(xo, weekday, newPersonCounters(), domain.WatchAF))
	})

	t.Run("达到每月上限后不再排", func(t *testing.T) {
		c := newPersonCounters()
		c.total = DefaultConfig().MonthlyCaps[domain.RankSailor]
		require.False(t, engine.isEligible(sailor, weekday, c, domain.WatchBYF))
	})

	t.Run("周末更上限", func(t *testing.T) {
		c := newPersonCounters()
		c.weekend = DefaultConfig().WeekendCap
		require.False(t, engine.isEligible(sailor, saturday, c, domain.WatchBYF))
		// 周末上限只管周末
		require.True(t, engine.isEligible(sailor, weekday, c, domain.WatchBYF))
	})

	t.Run("节假日更上限", func(t *testing.T) {
		c := newPersonCounters()
		c.holiday = DefaultConfig().HolidayCap
		require.False(t, engine.isEligible(sailor, holiday, c, domain.WatchBYF))
		require.True(t, engine.isEligible(sailor, weekday, c, domain.WatchBYF))
	})

	t.Run("间隔规则", func(t *testing.T) {
		testCases := []struct {
			name     string
			lastDate time.Time
			want     bool
		}{
			{name: "同一天不能排两更", lastDate: date(2026, time.June, 10), want: false},
			{name: "相隔一天不行", lastDate: date(2026, time.June, 9), want: false},
			{name: "相隔两天不行", lastDate: date(2026, time.June, 8), want: false},
			{name: "相隔三天可以", lastDate: date(2026, time.June, 7), want: true},
		}

		day := domain.Day{Date: date(2026, time.June, 10), InPort: true}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				c := newPersonCounters()
				c.total = 1
				c.dates = append(c.dates, tc.lastDate)
				require.Equal(t, tc.want, engine.isEligible(sailor, day, c, domain.WatchBYF))
			})
		}
	})
}

func TestScoreKeyAFYoungestFirst(t *testing.T) {
	engine := &ruleEngine{cfg: DefaultConfig()}

	senior := &domain.Person{ID: 1, FullName: "Dimitrios Georgiou", Rank: domain.RankLieutenant}
	junior := &domain.Person{ID: 2, FullName: "Christos Christodoulou", Rank: domain.RankEnsign}

	seniorKey := engine.scoreKey(senior, newPersonCounters(), domain.WatchAF, false)
	juniorKey := engine.scoreKey(junior, newPersonCounters(), domain.WatchAF, false)

	require.True(t, juniorKey.less(seniorKey))

	// AF 的排序是固定的资历序，与本月已站更数无关
	c := newPersonCounters()
	c.total = 3
	juniorBusy := engine.scoreKey(junior, c, domain.WatchAF, false)
	require.True(t, juniorBusy.less(seniorKey))
}

func TestScoreKeyFairnessAndSeniority(t *testing.T) {
	engine := &ruleEngine{cfg: DefaultConfig()}

	pettyOfficer := &domain.Person{ID: 1, FullName: "Andreas Stavrou", Rank: domain.RankPettyOfficer}
	sailor := &domain.Person{ID: 2, FullName: "Konstantinos Vasileiou", Rank: domain.RankSailor}

	t.Run("同计数时资历浅者优先", func(t *testing.T) {
		a := engine.scoreKey(pettyOfficer, newPersonCounters(), domain.WatchYF, false)
		b := engine.scoreKey(sailor, newPersonCounters(), domain.WatchYF, false)
		require.True(t, b.less(a))
	})

	t.Run("计数少者优先于资历", func(t *testing.T) {
		busy := newPersonCounters()
		busy.total = 1
		a := engine.scoreKey(pettyOfficer, newPersonCounters(), domain.WatchYF, false)
		b := engine.scoreKey(sailor, busy, domain.WatchYF, false)
		require.True(t, a.less(b))
	})
}

func TestScoreKeyPreferenceBonus(t *testing.T) {
	engine := &ruleEngine{cfg: DefaultConfig()}

	a := &domain.Person{ID: 1, FullName: "Evangelos Makris", Rank: domain.RankSailor}
	b := &domain.Person{ID: 2, FullName: "Spyridon Alexiou", Rank: domain.RankSailor}

	t.Run("同计数时偏好占先", func(t *testing.T) {
		plain := engine.scoreKey(a, newPersonCounters(), domain.WatchYF, false)
		preferred := engine.scoreKey(b, newPersonCounters(), domain.WatchYF, true)
		require.True(t, preferred.less(plain))
	})

	t.Run("偏好追不上比自己少一更的人", func(t *testing.T) {
		busy := newPersonCounters()
		busy.total = 1
		plain := engine.scoreKey(a, newPersonCounters(), domain.WatchYF, false)
		preferredBusy := engine.scoreKey(b, busy, domain.WatchYF, true)
		require.True(t, plain.less(preferredBusy))
	})
}

func TestOrderKeyNameBreaksTies(t *testing.T) {
	a := orderKey{primary: 0, secondary: 0, name: "Andreas"}
	b := orderKey{primary: 0, secondary: 0, name: "Basileios"}
	require.True(t, a.less(b))
	require.False(t, b.less(a))
}

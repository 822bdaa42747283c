package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	"github.com/hs-nautilus/watchbill/backend/internal/utils"
)

// ErrInvalidConfiguration 规则表引用了未知的军衔或更种，或者上限不合法，
// 在 New 阶段直接失败，不会开始任何排班动作
var ErrInvalidConfiguration = errors.New("无效的排班规则配置")

type runState int

const (
	stateInitialized runState = iota
	stateRunning
	stateFinalized
)

// Scheduler 月度在港排更的调度器本体。
// 这是整个流程中唯一有状态、对处理顺序敏感的组件：
// 按日期升序逐天处理，天内按 AF、YF、YFM、BYFM、BYF 的固定优先级逐更选人，
// 计数器只由它写入，所以同样的输入重跑必然得到同样的结果
type Scheduler struct {
	cfg    *Config
	year   int
	month  time.Month
	roster []*domain.Person
	days   []domain.Day
	prefs  map[int64][]*domain.PreferenceEntry

	avail    *availabilityIndex
	rules    *ruleEngine
	counters map[int64]*personCounters
	state    runState
}

// New 创建调度器并提前校验规则表和花名册（fail-fast），
// 规则表里出现未知军衔、花名册里出现规则表没有覆盖的军衔都会直接报错
func New(cfg *Config, year int, month time.Month, roster []*domain.Person, days []domain.Day,
	leaves []*domain.LeaveRecord, unavailable []*domain.UnavailabilityEntry, prefs []*domain.PreferenceEntry) (*Scheduler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: 规则表不能为空", ErrInvalidConfiguration)
	}
	if cfg.GapDays < 0 || cfg.WeekendCap < 0 || cfg.HolidayCap < 0 {
		return nil, fmt.Errorf("%w: 间隔天数和上限不能为负数", ErrInvalidConfiguration)
	}
	if len(cfg.MonthlyCaps) == 0 {
		return nil, fmt.Errorf("%w: 每月上限表不能为空", ErrInvalidConfiguration)
	}

	for rank, ceiling := range cfg.MonthlyCaps {
		if _, ok := rank.SeniorityIndex(); !ok {
			return nil, fmt.Errorf("%w: 上限表中存在未知军衔 %q", ErrInvalidConfiguration, rank)
		}
		if ceiling <= 0 {
			return nil, fmt.Errorf("%w: 军衔 %q 的每月上限必须为正数", ErrInvalidConfiguration, rank)
		}
	}

	for _, p := range roster {
		if _, ok := p.Rank.SeniorityIndex(); !ok {
			return nil, fmt.Errorf("%w: 人员 %q 的军衔 %q 未知", ErrInvalidConfiguration, p.FullName, p.Rank)
		}
		if _, ok := cfg.MonthlyCaps[p.Rank]; !ok {
			return nil, fmt.Errorf("%w: 上限表没有覆盖军衔 %q", ErrInvalidConfiguration, p.Rank)
		}
		for _, w := range []domain.WatchType{p.PrimaryWatch, p.AlternateWatch, p.AtSeaWatch} {
			if w != "" && !w.IsValid() {
				return nil, fmt.Errorf("%w: 人员 %q 配置了未知更种 %q", ErrInvalidConfiguration, p.FullName, w)
			}
		}
	}

	for _, pref := range prefs {
		if pref.Watch != "" && !pref.Watch.IsValid() {
			return nil, fmt.Errorf("%w: 偏好记录引用了未知更种 %q", ErrInvalidConfiguration, pref.Watch)
		}
	}

	s := &Scheduler{
		cfg:    cfg,
		year:   year,
		month:  month,
		roster: roster,
		days:   make([]domain.Day, len(days)),
		prefs:  make(map[int64][]*domain.PreferenceEntry),
		avail:  newAvailabilityIndex(leaves, unavailable),
		rules:  &ruleEngine{cfg: cfg},
		state:  stateInitialized,
	}

	copy(s.days, days)
	sort.Slice(s.days, func(i, j int) bool {
		return s.days[i].Date.Before(s.days[j].Date)
	})

	for _, pref := range prefs {
		s.prefs[pref.PersonID] = append(s.prefs[pref.PersonID], pref)
	}

	return s, nil
}

// Schedule 执行一次完整的排班运行。
// 每个 (日期, 更种) 要么产生一条 Assignment，要么产生一条空更诊断，
// 空更不是错误，运行总是会走到 Finalized
func (s *Scheduler) Schedule() (*domain.WatchBill, error) {
	// 每次运行都重建计数器，保证 Schedule 可以安全地重复调用
	s.counters = make(map[int64]*personCounters, len(s.roster))
	for _, p := range s.roster {
		s.counters[p.ID] = newPersonCounters()
	}
	s.state = stateRunning

	bill := &domain.WatchBill{
		Year:        s.year,
		Month:       s.month,
		Assignments: make([]domain.Assignment, 0),
		Unfilled:    make([]domain.UnfilledSlot, 0),
	}

	for _, day := range s.days {
		// 在航的日子所有在港更种整体置空
		if day.AtSea {
			for _, watch := range domain.WatchTypes {
				bill.Unfilled = append(bill.Unfilled, domain.UnfilledSlot{
					Date:   day.Date,
					Watch:  watch,
					Reason: domain.UnfilledAtSea,
				})
			}
			continue
		}

		for _, watch := range domain.WatchTypes {
			picked := s.pickCandidate(day, watch)
			if picked == nil {
				bill.Unfilled = append(bill.Unfilled, domain.UnfilledSlot{
					Date:   day.Date,
					Watch:  watch,
					Reason: domain.UnfilledNoCandidate,
				})
				continue
			}

			// 提交前的防御性复查：选出来的人如果违反任何硬规则，
			// 宁可记空更也不能把违规的排班写进结果（防算法 bug，不防外部误用）
			c := s.counters[picked.ID]
			if !s.rules.isEligible(picked, day, c, watch) {
				bill.Unfilled = append(bill.Unfilled, domain.UnfilledSlot{
					Date:   day.Date,
					Watch:  watch,
					Reason: domain.UnfilledRuleViolated,
				})
				continue
			}

			bill.Assignments = append(bill.Assignments, domain.Assignment{
				Date:     day.Date,
				Watch:    watch,
				PersonID: picked.ID,
			})

			// 计数器必须与已产生的 Assignment 严格一致
			c.total++
			c.perWatch[watch]++
			c.dates = append(c.dates, day.Date)
			if day.IsWeekend {
				c.weekend++
			}
			if day.IsHoliday {
				c.holiday++
			}
		}
	}

	bill.Stats = BuildStats(s.roster, bill.Assignments, s.days)
	s.state = stateFinalized

	// 最后再整体校验一遍结果是否满足所有硬性约束
	if err := utils.ValidateWatchBill(bill, s.roster, s.days, s.cfg.GapDays, s.cfg.WeekendCap, s.cfg.HolidayCap); err != nil {
		return nil, err
	}

	return bill, nil
}

// pickCandidate 为 (day, watch) 选出最合适的人，选不出返回 nil。
// 候选池按优先级分层：主更种持有者优先于备更种持有者；
// AF 更里普通职务优先于只能排工作日的副长/值更官（后者作为兜底）
func (s *Scheduler) pickCandidate(day domain.Day, watch domain.WatchType) *domain.Person {
	primary, alternate := s.buildPools(day, watch)

	var tiers [][]*domain.Person
	if watch == domain.WatchAF {
		pRegular, pRestricted := splitWeekdayOnly(primary)
		aRegular, aRestricted := splitWeekdayOnly(alternate)
		tiers = [][]*domain.Person{pRegular, pRestricted, aRegular, aRestricted}
	} else {
		tiers = [][]*domain.Person{primary, alternate}
	}

	for _, pool := range tiers {
		if p := s.pickFromPool(pool, day, watch); p != nil {
			return p
		}
	}

	return nil
}

// buildPools 构建当天某更种的候选池：排除舰长、非现役和当天不可用的人，
// 军衔必须允许站这种更，然后按主更种/备更种分成两层
func (s *Scheduler) buildPools(day domain.Day, watch domain.WatchType) (primary, alternate []*domain.Person) {
	for _, p := range s.roster {
		if !p.IsActive || p.IsCaptain() {
			continue
		}

		rankEligible := false
		for _, w := range p.RankEligibleWatches() {
			if w == watch {
				rankEligible = true
				break
			}
		}
		if !rankEligible {
			continue
		}

		if ok, _ := s.avail.resolve(p, day); !ok {
			continue
		}

		switch {
		case p.PrimaryWatch == watch:
			primary = append(primary, p)
		case p.AlternateWatch == watch:
			alternate = append(alternate, p)
		}
	}

	return primary, alternate
}

// pickFromPool 把池子按排序键排好后取第一个通过硬规则的人
func (s *Scheduler) pickFromPool(pool []*domain.Person, day domain.Day, watch domain.WatchType) *domain.Person {
	sorted := make([]*domain.Person, len(pool))
	copy(sorted, pool)

	keys := make(map[int64]orderKey, len(sorted))
	for _, p := range sorted {
		keys[p.ID] = s.rules.scoreKey(p, s.counters[p.ID], watch, s.isPreferred(p.ID, day.Date, watch))
	}

	sort.Slice(sorted, func(i, j int) bool {
		return keys[sorted[i].ID].less(keys[sorted[j].ID])
	})

	for _, p := range sorted {
		if s.rules.isEligible(p, day, s.counters[p.ID], watch) {
			return p
		}
	}

	return nil
}

func (s *Scheduler) isPreferred(personID int64, date time.Time, watch domain.WatchType) bool {
	for _, pref := range s.prefs[personID] {
		if pref.Matches(date, watch) {
			return true
		}
	}
	return false
}

func splitWeekdayOnly(pool []*domain.Person) (regular, restricted []*domain.Person) {
	for _, p := range pool {
		if p.IsWeekdayOnly() {
			restricted = append(restricted, p)
		} else {
			regular = append(regular, p)
		}
	}
	return regular, restricted
}

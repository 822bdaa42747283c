package scheduler

import (
	"github.com/hs-nautilus/watchbill/backend/internal/domain"
)

// 偏好加分的幅度：计数按 scoreScale 放大，偏好减去 preferenceBonus，
// 因为 preferenceBonus < scoreScale，偏好只能在同计数的人里占先，
// 永远追不上比自己少一更的人，更不可能越过任何硬规则
const (
	scoreScale      = 10
	preferenceBonus = 5
)

// ruleEngine 无状态的规则库：硬规则判定加软排序键，按更种参数化
type ruleEngine struct {
	cfg *Config
}

// isEligible 硬规则，全部满足才有资格站这一更：
//   - 舰长永远不排更
//   - 间隔窗口内（含当天）已经站过更的人不排
//   - 不超过军衔对应的每月总更数上限
//   - 周末更不超过 WeekendCap，节假日更不超过 HolidayCap
//   - AF 更里担任副长/值更官职务的人只能排工作日
func (e *ruleEngine) isEligible(p *domain.Person, day domain.Day, c *personCounters, watch domain.WatchType) bool {
	if p.IsCaptain() {
		return false
	}

	if watch == domain.WatchAF && p.IsWeekdayOnly() && day.IsWeekend {
		return false
	}

	ceiling, ok := e.cfg.MonthlyCaps[p.Rank]
	if !ok {
		// New 阶段已经校验过规则表，走到这里说明上游有 bug，宁可不排
		return false
	}
	if c.total >= ceiling {
		return false
	}

	if day.IsWeekend && c.weekend >= e.cfg.WeekendCap {
		return false
	}
	if day.IsHoliday && c.holiday >= e.cfg.HolidayCap {
		return false
	}

	// 间隔规则：与任何一次已排日期相距不足 GapDays+1 天都不行，
	// 这同时保证了同一天不会被排两个更
	for _, d := range c.dates {
		if domain.DaysBetween(day.Date, d) <= e.cfg.GapDays {
			return false
		}
	}

	return true
}

// orderKey 软排序键，只用来给已具备资格的候选人排先后，越小越优先
type orderKey struct {
	primary   int
	secondary int
	name      string
}

func (k orderKey) less(o orderKey) bool {
	if k.primary != o.primary {
		return k.primary < o.primary
	}
	if k.secondary != o.secondary {
		return k.secondary < o.secondary
	}
	return k.name < o.name
}

// scoreKey 计算某人对某 (日期, 更种) 的排序键。
// AF 更：固定的从新到老排序（资历越浅越优先），不是公平性分数；
// 其余更种：主键为本次运行的总更数（少者优先），次键为资历（浅者优先），
// 末键为姓名字典序，保证完全确定
func (e *ruleEngine) scoreKey(p *domain.Person, c *personCounters, watch domain.WatchType, preferred bool) orderKey {
	seniority, _ := p.Rank.SeniorityIndex()

	bonus := 0
	if preferred {
		bonus = preferenceBonus
	}

	if watch == domain.WatchAF {
		return orderKey{
			primary: -seniority*scoreScale - bonus,
			name:    p.FullName,
		}
	}

	return orderKey{
		primary:   c.total*scoreScale - bonus,
		secondary: -seniority,
		name:      p.FullName,
	}
}

package scheduler

import (
	"sort"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
)

// BuildStats 对完成的排班结果做一次纯折叠，算出每人的总更数、周末更数、
// 节假日更数和分更种计数，外加一行全员合计。
// 花名册里没有排到更的人也会出现在结果里（计数为零）
func BuildStats(roster []*domain.Person, assignments []domain.Assignment, days []domain.Day) domain.WatchBillStats {
	dayByDate := make(map[int64]domain.Day, len(days))
	for _, d := range days {
		dayByDate[domain.CivilDate(d.Date).Unix()] = d
	}

	perPerson := make(map[int64]*domain.PersonWatchStats, len(roster))
	for _, p := range roster {
		perPerson[p.ID] = &domain.PersonWatchStats{
			PersonID:      p.ID,
			FullName:      p.FullName,
			Rank:          p.Rank,
			PerWatchTotal: make(map[domain.WatchType]int, len(domain.WatchTypes)),
		}
	}

	for _, a := range assignments {
		st, ok := perPerson[a.PersonID]
		if !ok {
			continue
		}

		st.Total++
		st.PerWatchTotal[a.Watch]++

		day, ok := dayByDate[domain.CivilDate(a.Date).Unix()]
		if !ok {
			continue
		}
		if day.IsWeekend {
			st.WeekendTotal++
		}
		if day.IsHoliday {
			st.HolidayTotal++
		}
	}

	stats := domain.WatchBillStats{
		PerPerson: make([]domain.PersonWatchStats, 0, len(perPerson)),
		Overall: domain.PersonWatchStats{
			FullName:      "Total",
			PerWatchTotal: make(map[domain.WatchType]int, len(domain.WatchTypes)),
		},
	}

	for _, p := range roster {
		st := perPerson[p.ID]
		stats.PerPerson = append(stats.PerPerson, *st)

		stats.Overall.Total += st.Total
		stats.Overall.WeekendTotal += st.WeekendTotal
		stats.Overall.HolidayTotal += st.HolidayTotal
		for w, n := range st.PerWatchTotal {
			stats.Overall.PerWatchTotal[w] += n
		}
	}

	// 输出顺序固定：总更数多者在前，再按军衔资历，最后按姓名
	sort.SliceStable(stats.PerPerson, func(i, j int) bool {
		a, b := stats.PerPerson[i], stats.PerPerson[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		ai, _ := a.Rank.SeniorityIndex()
		bi, _ := b.Rank.SeniorityIndex()
		if ai != bi {
			return ai < bi
		}
		return a.FullName < b.FullName
	})

	return stats
}

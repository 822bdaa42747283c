package scheduler

import (
	"testing"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestBuildStatsCountsAndOverall(t *testing.T) {
	roster := []*domain.Person{
		{ID: 1, FullName: "Andreas Stavrou", Rank: domain.RankPettyOfficer},
		{ID: 2, FullName: "Nikolaos Georgiou", Rank: domain.RankSeaman},
		{ID: 3, FullName: "Ioannis Christodoulou", Rank: domain.RankSailor},
	}

	days := []domain.Day{
		{Date: date(2026, time.June, 1), InPort: true},
		{Date: date(2026, time.June, 6), InPort: true, IsWeekend: true},
		{Date: date(2026, time.June, 25), InPort: true, IsHoliday: true},
	}

	assignments := []domain.Assignment{
		{Date: date(2026, time.June, 1), Watch: domain.WatchYF, PersonID: 1},
		{Date: date(2026, time.June, 6), Watch: domain.WatchYF, PersonID: 2},
		{Date: date(2026, time.June, 25), Watch: domain.WatchBYF, PersonID: 2},
	}

	stats := BuildStats(roster, assignments, days)

	require.Len(t, stats.PerPerson, 3)

	byID := make(map[int64]domain.PersonWatchStats)
	for _, st := range stats.PerPerson {
		byID[st.PersonID] = st
	}

	require.Equal(t, 1, byID[1].Total)
	require.Equal(t, 0, byID[1].WeekendTotal)
	require.Equal(t, 1, byID[1].PerWatchTotal[domain.WatchYF])

	require.Equal(t, 2, byID[2].Total)
	require.Equal(t, 1, byID[2].WeekendTotal)
	require.Equal(t, 1, byID[2].HolidayTotal)
	require.Equal(t, 1, byID[2].PerWatchTotal[domain.WatchYF])
	require.Equal(t, 1, byID[2].PerWatchTotal[domain.WatchBYF])

	// 没排到更的人也要出现，计数为零
	require.Equal(t, 0, byID[3].Total)
	require.Empty(t, byID[3].PerWatchTotal)

	require.Equal(t, "Total", stats.Overall.FullName)
	require.Equal(t, 3, stats.Overall.Total)
	require.Equal(t, 1, stats.Overall.WeekendTotal)
	require.Equal(t, 1, stats.Overall.HolidayTotal)
	require.Equal(t, 2, stats.Overall.PerWatchTotal[domain.WatchYF])
	require.Equal(t, 1, stats.Overall.PerWatchTotal[domain.WatchBYF])
}

func TestBuildStatsOrdering(t *testing.T) {
	roster := []*domain.Person{
		{ID: 1, FullName: "Ioannis Christodoulou", Rank: domain.RankSailor},
		{ID: 2, FullName: "Andreas Stavrou", Rank: domain.RankPettyOfficer},
		{ID: 3, FullName: "Spyridon Alexiou", Rank: domain.RankSailor},
		{ID: 4, FullName: "Evangelos Makris", Rank: domain.RankSailor},
	}

	days := []domain.Day{
		{Date: date(2026, time.June, 1), InPort: true},
		{Date: date(2026, time.June, 4), InPort: true},
		{Date: date(2026, time.June, 8), InPort: true},
	}

	assignments := []domain.Assignment{
		{Date: date(2026, time.June, 1), Watch: domain.WatchBYF, PersonID: 1},
		{Date: date(2026, time.June, 4), Watch: domain.WatchBYF, PersonID: 1},
		{Date: date(2026, time.June, 8), Watch: domain.WatchYF, PersonID: 2},
		{Date: date(2026, time.June, 8), Watch: domain.WatchBYF, PersonID: 3},
		{Date: date(2026, time.June, 8), Watch: domain.WatchBYFM, PersonID: 4},
	}

	stats := BuildStats(roster, assignments, days)

	// 总更数多者在前，同总数按资历深者在前，再同按姓名字典序
	ids := make([]int64, 0, len(stats.PerPerson))
	for _, st := range stats.PerPerson {
		ids = append(ids, st.PersonID)
	}
	require.Equal(t, []int64{1, 2, 4, 3}, ids)
}

func TestBuildStatsIgnoresUnknownPerson(t *testing.T) {
	roster := []*domain.Person{
		{ID: 1, FullName: "Andreas Stavrou", Rank: domain.RankPettyOfficer},
	}
	days := []domain.Day{{Date: date(2026, time.June, 1), InPort: true}}

	assignments := []domain.Assignment{
		{Date: date(2026, time.June, 1), Watch: domain.WatchYF, PersonID: 99},
	}

	stats := BuildStats(roster, assignments, days)
	require.Equal(t, 0, stats.Overall.Total)
	require.Len(t, stats.PerPerson, 1)
	require.Equal(t, 0, stats.PerPerson[0].Total)
}

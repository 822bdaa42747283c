package calendar

import (
	"testing"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildMonthInvalidInput(t *testing.T) {
	testCases := []struct {
		name  string
		year  int
		month time.Month
	}{
		{name: "年份为零", year: 0, month: time.June},
		{name: "年份为负", year: -1, month: time.June},
		{name: "年份过大", year: 10000, month: time.June},
		{name: "月份为零", year: 2026, month: 0},
		{name: "月份过大", year: 2026, month: 13},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildMonth(tc.year, tc.month, nil, nil)
			require.ErrorIs(t, err, ErrInvalidCalendarInput)
		})
	}
}

func TestBuildMonthCoversWholeMonth(t *testing.T) {
	days, err := BuildMonth(2026, time.June, nil, nil)
	require.NoError(t, err)
	require.Len(t, days, 30)

	require.Equal(t, date(2026, time.June, 1), days[0].Date)
	require.Equal(t, date(2026, time.June, 30), days[29].Date)

	for i, d := range days {
		require.Equal(t, i+1, d.Date.Day())
		require.True(t, d.InPort)
		require.False(t, d.AtSea)
	}

	// 2026-06-01 是星期一，周末落在 6、7、13、14、20、21、27、28
	weekends := map[int]bool{6: true, 7: true, 13: true, 14: true, 20: true, 21: true, 27: true, 28: true}
	for _, d := range days {
		require.Equal(t, weekends[d.Date.Day()], d.IsWeekend, "day %d", d.Date.Day())
	}
}

func TestBuildMonthAtSeaAndHolidays(t *testing.T) {
	atSea := []domain.DateRange{
		{Start: date(2026, time.June, 10), End: date(2026, time.June, 14)},
	}
	holidays := []time.Time{date(2026, time.June, 25)}

	days, err := BuildMonth(2026, time.June, atSea, holidays)
	require.NoError(t, err)

	for _, d := range days {
		inRange := d.Date.Day() >= 10 && d.Date.Day() <= 14
		require.Equal(t, inRange, d.AtSea, "day %d", d.Date.Day())
		require.Equal(t, !inRange, d.InPort, "day %d", d.Date.Day())
		require.Equal(t, d.Date.Day() == 25, d.IsHoliday, "day %d", d.Date.Day())
	}
}

func TestBuildMonthDeterministic(t *testing.T) {
	atSea := []domain.DateRange{
		{Start: date(2026, time.June, 3), End: date(2026, time.June, 5)},
	}
	holidays := []time.Time{date(2026, time.June, 15)}

	first, err := BuildMonth(2026, time.June, atSea, holidays)
	require.NoError(t, err)

	second, err := BuildMonth(2026, time.June, atSea, holidays)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

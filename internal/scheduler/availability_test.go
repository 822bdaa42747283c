package scheduler

import (
	"testing"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAvailabilityResolve(t *testing.T) {
	p := &domain.Person{ID: 1, FullName: "Andreas Stavrou", Rank: domain.RankSailor}

	leaves := []*domain.LeaveRecord{
		{PersonID: 1, Type: domain.LeaveRegular, Range: domain.DateRange{
			Start: date(2026, time.June, 10), End: date(2026, time.June, 12),
		}},
	}
	unavailable := []*domain.UnavailabilityEntry{
		{PersonID: 1, Range: domain.DateRange{
			Start: date(2026, time.June, 12), End: date(2026, time.June, 15),
		}},
	}

	ix := newAvailabilityIndex(leaves, unavailable)

	testCases := []struct {
		name       string
		day        domain.Day
		wantOK     bool
		wantReason UnavailableReason
	}{
		{
			name:   "普通在港日可用",
			day:    domain.Day{Date: date(2026, time.June, 1), InPort: true},
			wantOK: true,
		},
		{
			name:       "在航日优先于一切",
			day:        domain.Day{Date: date(2026, time.June, 11), AtSea: true},
			wantOK:     false,
			wantReason: ReasonAtSea,
		},
		{
			name:       "休假区间内不可用",
			day:        domain.Day{Date: date(2026, time.June, 10), InPort: true},
			wantOK:     false,
			wantReason: ReasonOnLeave,
		},
		{
			name:       "不可用区间优先于休假",
			day:        domain.Day{Date: date(2026, time.June, 12), InPort: true},
			wantOK:     false,
			wantReason: ReasonUnavailable,
		},
		{
			name:   "区间结束后恢复可用",
			day:    domain.Day{Date: date(2026, time.June, 16), InPort: true},
			wantOK: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := ix.resolve(p, tc.day)
			require.Equal(t, tc.wantOK, ok)
			require.Equal(t, tc.wantReason, reason)
		})
	}
}

func TestAvailabilityResolveOtherPersonUnaffected(t *testing.T) {
	leaves := []*domain.LeaveRecord{
		{PersonID: 1, Type: domain.LeaveAMD, Range: domain.DateRange{
			Start: date(2026, time.June, 1), End: date(2026, time.June, 30),
		}},
	}

	ix := newAvailabilityIndex(leaves, nil)

	other := &domain.Person{ID: 2, FullName: "Georgios Nikolaou", Rank: domain.RankSeaman}
	ok, reason := ix.resolve(other, domain.Day{Date: date(2026, time.June, 15), InPort: true})
	require.True(t, ok)
	require.Empty(t, reason)
}

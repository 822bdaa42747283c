package scheduler

import (
	"github.com/hs-nautilus/watchbill/backend/internal/domain"
)

// UnavailableReason 不可用的原因码，会原样出现在空更诊断里
type UnavailableReason string

const (
	ReasonAtSea       UnavailableReason = "at-sea"
	ReasonOnLeave     UnavailableReason = "on-leave"
	ReasonUnavailable UnavailableReason = "unavailable"
)

// availabilityIndex 把休假区间和不可用区间按人索引好，
// 让 resolve 成为纯查表操作，没有任何副作用
type availabilityIndex struct {
	leaves      map[int64][]domain.DateRange
	unavailable map[int64][]domain.DateRange
}

func newAvailabilityIndex(leaves []*domain.LeaveRecord, entries []*domain.UnavailabilityEntry) *availabilityIndex {
	ix := &availabilityIndex{
		leaves:      make(map[int64][]domain.DateRange),
		unavailable: make(map[int64][]domain.DateRange),
	}

	for _, l := range leaves {
		ix.leaves[l.PersonID] = append(ix.leaves[l.PersonID], l.Range)
	}
	for _, e := range entries {
		ix.unavailable[e.PersonID] = append(ix.unavailable[e.PersonID], e.Range)
	}

	return ix
}

// resolve 给出某人在某天的可用性判定：
//  1. 在航的日子所有人对在港更种都不可用
//  2. 日期落在该人的任何不可用区间内则不可用
//  3. 日期落在该人的任何已批准休假区间内则不可用
func (ix *availabilityIndex) resolve(p *domain.Person, day domain.Day) (bool, UnavailableReason) {
	if day.AtSea {
		return false, ReasonAtSea
	}

	for _, r := range ix.unavailable[p.ID] {
		if r.Contains(day.Date) {
			return false, ReasonUnavailable
		}
	}

	for _, r := range ix.leaves[p.ID] {
		if r.Contains(day.Date) {
			return false, ReasonOnLeave
		}
	}

	return true, ""
}

package domain

import "time"

type LeaveType string

const (
	LeaveRegular      LeaveType = "Regular"
	LeaveAMD          LeaveType = "AMD"
	LeaveChildRearing LeaveType = "Child Rearing Leave"
	LeaveVerbal       LeaveType = "Verbal Leave"
	LeaveParental     LeaveType = "Parental Leave"
	LeaveMarriage     LeaveType = "Marriage Leave"
	LeaveMaternity    LeaveType = "Maternity Leave"
)

var LeaveTypes = []LeaveType{
	LeaveRegular, LeaveAMD, LeaveChildRearing,
	LeaveVerbal, LeaveParental, LeaveMarriage, LeaveMaternity,
}

// LeaveRecord 已批准的休假区间，休假期间的人在排更时不可用
type LeaveRecord struct {
	ID        int64     `json:"id"`
	PersonID  int64     `json:"personID"`
	Type      LeaveType `json:"type"`
	Range     DateRange `json:"range"`
	Comments  string    `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// UnavailabilityEntry 硬性排除：这段日期内该人一律不排更
type UnavailabilityEntry struct {
	ID        int64     `json:"id"`
	PersonID  int64     `json:"personID"`
	Range     DateRange `json:"range"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// PreferenceEntry 软性偏好：排序时给予加分，永远不能越过硬规则。
// Watch 为空表示对当天任意更种都有偏好
type PreferenceEntry struct {
	ID        int64     `json:"id"`
	PersonID  int64     `json:"personID"`
	Date      time.Time `json:"date"`
	Watch     WatchType `json:"watch,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// Matches 判断偏好是否命中给定的 (日期, 更种)
func (p *PreferenceEntry) Matches(date time.Time, watch WatchType) bool {
	if !CivilDate(p.Date).Equal(CivilDate(date)) {
		return false
	}
	return p.Watch == "" || p.Watch == watch
}

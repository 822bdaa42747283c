package domain

import "time"

// Day 是日历构建器产出的单日记录，一次排班运行中不可变
type Day struct {
	Date      time.Time `json:"date"`
	InPort    bool      `json:"inPort"`
	AtSea     bool      `json:"atSea"`
	IsHoliday bool      `json:"isHoliday"`
	IsWeekend bool      `json:"isWeekend"`
}

// DateRange 表示闭区间 [Start, End]，按自然日计算
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains 判断日期 d 是否落在区间内（只比较日期部分）
func (r DateRange) Contains(d time.Time) bool {
	day := CivilDate(d)
	return !day.Before(CivilDate(r.Start)) && !day.After(CivilDate(r.End))
}

// MonthCalendar 记录某个月的在航区间和节假日，由日历维护接口写入
type MonthCalendar struct {
	ID          int64       `json:"id"`
	Year        int         `json:"year"`
	Month       time.Month  `json:"month"`
	AtSeaRanges []DateRange `json:"atSeaRanges"`
	Holidays    []time.Time `json:"holidays"`
	CreatedAt   time.Time   `json:"createdAt"`
	Version     int32       `json:"-"`
}

// CivilDate 把时间截断到日期（UTC 零点），排班内部统一用这个形式比较日期
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween 返回两个日期之间相隔的自然日数（绝对值）
func DaysBetween(a, b time.Time) int {
	d := int(CivilDate(a).Sub(CivilDate(b)).Hours() / 24)
	if d < 0 {
		d = -d
	}
	return d
}

package calendar

import (
	"errors"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
)

// ErrInvalidCalendarInput 年份或月份不合法，在任何排班动作开始前就返回给调用方
var ErrInvalidCalendarInput = errors.New("无效的年份或月份")

// BuildMonth 为目标月份生成有序的 Day 序列，覆盖当月每一天。
// 在航区间内的日期标记为 AtSea，其余日期标记为 InPort，
// 周末标志由星期几推导，节假日由传入的日期列表决定。
// 这是一个确定性的纯函数，除了输入校验之外没有任何错误分支
func BuildMonth(year int, month time.Month, atSeaRanges []domain.DateRange, holidays []time.Time) ([]domain.Day, error) {
	if year < 1 || year > 9999 || month < time.January || month > time.December {
		return nil, ErrInvalidCalendarInput
	}

	holidaySet := make(map[time.Time]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[domain.CivilDate(h)] = true
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]domain.Day, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)

		atSea := false
		for _, r := range atSeaRanges {
			if r.Contains(date) {
				atSea = true
				break
			}
		}

		weekday := date.Weekday()

		days = append(days, domain.Day{
			Date:      date,
			InPort:    !atSea,
			AtSea:     atSea,
			IsHoliday: holidaySet[date],
			IsWeekend: weekday == time.Saturday || weekday == time.Sunday,
		})
	}

	return days, nil
}

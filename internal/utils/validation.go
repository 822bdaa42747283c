package utils

import (
	"fmt"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
)

// ValidateDateRange 检查区间的结束日期不早于开始日期
func ValidateDateRange(r domain.DateRange) error {
	if domain.CivilDate(r.End).Before(domain.CivilDate(r.Start)) {
		return fmt.Errorf("区间的结束日期 %s 不能早于开始日期 %s",
			r.End.Format(time.DateOnly), r.Start.Format(time.DateOnly))
	}
	return nil
}

// ValidateMonthCalendar 检查月度日历：在航区间和节假日必须都落在目标月份内
func ValidateMonthCalendar(cal *domain.MonthCalendar) error {
	if cal.Year < 1 || cal.Year > 9999 || cal.Month < time.January || cal.Month > time.December {
		return fmt.Errorf("无效的年份或月份")
	}

	first := time.Date(cal.Year, cal.Month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	for i, r := range cal.AtSeaRanges {
		if err := ValidateDateRange(r); err != nil {
			return fmt.Errorf("第 %d 个在航区间不合法: %w", i+1, err)
		}
		if domain.CivilDate(r.Start).Before(first) || domain.CivilDate(r.End).After(last) {
			return fmt.Errorf("第 %d 个在航区间超出了目标月份", i+1)
		}
	}

	for i, h := range cal.Holidays {
		d := domain.CivilDate(h)
		if d.Before(first) || d.After(last) {
			return fmt.Errorf("第 %d 个节假日不在目标月份内", i+1)
		}
	}

	return nil
}

// ValidateWatchBill 对完成的排班结果做整体校验，调度器在返回结果前会调用它，
// 任何一条硬规则被打破都说明调度算法有 bug
func ValidateWatchBill(bill *domain.WatchBill, roster []*domain.Person, days []domain.Day,
	gapDays, weekendCap, holidayCap int) error {
	people := make(map[int64]*domain.Person, len(roster))
	for _, p := range roster {
		people[p.ID] = p
	}

	dayByDate := make(map[int64]domain.Day, len(days))
	for _, d := range days {
		dayByDate[domain.CivilDate(d.Date).Unix()] = d
	}

	type personTally struct {
		weekend int
		holiday int
		dates   []time.Time
	}

	seenSlot := make(map[string]bool, len(bill.Assignments))
	tally := make(map[int64]*personTally)

	for _, a := range bill.Assignments {
		p, ok := people[a.PersonID]
		if !ok {
			return fmt.Errorf("排班结果引用了不在花名册中的人员 %d", a.PersonID)
		}
		if p.IsCaptain() {
			return fmt.Errorf("舰长 %q 出现在了排班结果中", p.FullName)
		}

		slot := fmt.Sprintf("%s/%s", a.Date.Format(time.DateOnly), a.Watch)
		if seenSlot[slot] {
			return fmt.Errorf("槽位 %s 被重复排班", slot)
		}
		seenSlot[slot] = true

		day, ok := dayByDate[domain.CivilDate(a.Date).Unix()]
		if !ok {
			return fmt.Errorf("排班结果引用了日历之外的日期 %s", a.Date.Format(time.DateOnly))
		}
		if day.AtSea {
			return fmt.Errorf("在航日 %s 不允许有在港排班", a.Date.Format(time.DateOnly))
		}

		t := tally[a.PersonID]
		if t == nil {
			t = &personTally{}
			tally[a.PersonID] = t
		}
		if day.IsWeekend {
			t.weekend++
		}
		if day.IsHoliday {
			t.holiday++
		}
		t.dates = append(t.dates, a.Date)
	}

	for id, t := range tally {
		if t.weekend > weekendCap {
			return fmt.Errorf("人员 %d 的周末更数 %d 超过了上限 %d", id, t.weekend, weekendCap)
		}
		if t.holiday > holidayCap {
			return fmt.Errorf("人员 %d 的节假日更数 %d 超过了上限 %d", id, t.holiday, holidayCap)
		}

		for i := 0; i < len(t.dates); i++ {
			for j := i + 1; j < len(t.dates); j++ {
				if domain.DaysBetween(t.dates[i], t.dates[j]) <= gapDays {
					return fmt.Errorf("人员 %d 在 %s 和 %s 的两次值更间隔不足 %d 天",
						id, t.dates[i].Format(time.DateOnly), t.dates[j].Format(time.DateOnly), gapDays+1)
				}
			}
		}
	}

	return nil
}

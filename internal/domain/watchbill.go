package domain

import "time"

// Assignment 表示某一天某个更种由谁来站，每个 (日期, 更种) 至多一条
type Assignment struct {
	Date     time.Time `json:"date"`
	Watch    WatchType `json:"watch"`
	PersonID int64     `json:"personID"`
}

// UnfilledReason 空更的原因
type UnfilledReason string

const (
	UnfilledAtSea        UnfilledReason = "at-sea"
	UnfilledNoCandidate  UnfilledReason = "no-eligible-candidate"
	UnfilledRuleViolated UnfilledReason = "constraint-violation"
)

// UnfilledSlot 表示某个 (日期, 更种) 没有排到人，这是诊断信息而不是错误
type UnfilledSlot struct {
	Date   time.Time      `json:"date"`
	Watch  WatchType      `json:"watch"`
	Reason UnfilledReason `json:"reason"`
}

// PersonWatchStats 某个人在一次排班运行中的统计
type PersonWatchStats struct {
	PersonID      int64             `json:"personID"`
	FullName      string            `json:"fullName"`
	Rank          Rank              `json:"rank"`
	Total         int               `json:"total"`
	WeekendTotal  int               `json:"weekendTotal"`
	HolidayTotal  int               `json:"holidayTotal"`
	PerWatchTotal map[WatchType]int `json:"perWatchTotal"`
}

// WatchBillStats 整次运行的统计：每人一行加一个总计行
type WatchBillStats struct {
	PerPerson []PersonWatchStats `json:"perPerson"`
	Overall   PersonWatchStats   `json:"overall"`
}

// WatchBill 一次排班运行的最终产物，只有 Finalized 的结果才允许持久化或导出
type WatchBill struct {
	ID          int64          `json:"id"`
	Year        int            `json:"year"`
	Month       time.Month     `json:"month"`
	Assignments []Assignment   `json:"assignments"`
	Unfilled    []UnfilledSlot `json:"unfilled"`
	Stats       WatchBillStats `json:"stats"`
	IsPublished bool           `json:"isPublished"`
	CreatedAt   time.Time      `json:"createdAt"`
	Version     int32          `json:"-"`
}

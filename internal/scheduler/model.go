package scheduler

import (
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
)

// Config 排班规则表，由调用方持有并在每次运行时传入，
// 所有字段都会在 New 里提前校验（fail-fast），不会等到排班中途才发现缺项
type Config struct {
	// GapDays 两次值更之间至少要空出的自然日数
	GapDays int
	// WeekendCap 每人每月周末更的上限
	WeekendCap int
	// HolidayCap 每人每月节假日更的上限
	HolidayCap int
	// MonthlyCaps 每个军衔每月的总更数上限
	MonthlyCaps map[domain.Rank]int
}

// DefaultConfig 舰上沿用的规则表：军官、准尉和军士长每月 4 更，
// 下士 5 更，上等兵 6 更，水兵 15 更，间隔两天，周末最多 2 更，节假日最多 1 更
func DefaultConfig() *Config {
	return &Config{
		GapDays:    2,
		WeekendCap: 2,
		HolidayCap: 1,
		MonthlyCaps: map[domain.Rank]int{
			domain.RankCommander:            4,
			domain.RankCommanderM:           4,
			domain.RankLieutenantCommander:  4,
			domain.RankLieutenantCommanderM: 4,
			domain.RankLieutenant:           4,
			domain.RankLieutenantM:          4,
			domain.RankLieutenantE:          4,
			domain.RankEnsign:               4,
			domain.RankEnsignM:              4,
			domain.RankEnsignE:              4,
			domain.RankWarrantOfficer:       4,
			domain.RankChiefPettyOfficer:    4,
			domain.RankSeniorPettyOfficer:   4,
			domain.RankPettyOfficer:         5,
			domain.RankSeaman:               6,
			domain.RankSailor:               15,
		},
	}
}

// personCounters 单次运行内每个人的累计计数，只由调度器本体写入，
// 每次 Schedule 开始时整体重建，保证重跑结果一致
type personCounters struct {
	total    int
	weekend  int
	holiday  int
	perWatch map[domain.WatchType]int
	dates    []time.Time
}

func newPersonCounters() *personCounters {
	return &personCounters{
		perWatch: make(map[domain.WatchType]int, len(domain.WatchTypes)),
	}
}

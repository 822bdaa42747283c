package domain

import "time"

type Rank string

const (
	RankCommander            Rank = "Commander"
	RankCommanderM           Rank = "Commander (M)"
	RankLieutenantCommander  Rank = "Lieutenant Commander"
	RankLieutenantCommanderM Rank = "Lieutenant Commander (M)"
	RankLieutenant           Rank = "Lieutenant"
	RankLieutenantM          Rank = "Lieutenant (M)"
	RankLieutenantE          Rank = "Lieutenant (E)"
	RankEnsign               Rank = "Ensign"
	RankEnsignM              Rank = "Ensign (M)"
	RankEnsignE              Rank = "Ensign (E)"
	RankWarrantOfficer       Rank = "Warrant Officer"
	RankChiefPettyOfficer    Rank = "Chief Petty Officer"
	RankSeniorPettyOfficer   Rank = "Senior Petty Officer"
	RankPettyOfficer         Rank = "Petty Officer"
	RankSeaman               Rank = "Seaman"
	RankSailor               Rank = "Sailor"
)

// Ranks 按资历从高到低排列，下标就是资历序（下标越小资历越深）
var Ranks = []Rank{
	RankCommander, RankCommanderM,
	RankLieutenantCommander, RankLieutenantCommanderM,
	RankLieutenant, RankLieutenantM, RankLieutenantE,
	RankEnsign, RankEnsignM, RankEnsignE,
	RankWarrantOfficer, RankChiefPettyOfficer, RankSeniorPettyOfficer,
	RankPettyOfficer, RankSeaman, RankSailor,
}

var rankSeniority = func() map[Rank]int {
	m := make(map[Rank]int, len(Ranks))
	for i, r := range Ranks {
		m[r] = i
	}
	return m
}()

// SeniorityIndex 返回军衔在资历序中的位置，军衔不在既定列表中时第二个返回值为 false
func (r Rank) SeniorityIndex() (int, bool) {
	i, ok := rankSeniority[r]
	return i, ok
}

var officerRanks = map[Rank]bool{
	RankCommander: true, RankCommanderM: true,
	RankLieutenantCommander: true, RankLieutenantCommanderM: true,
	RankLieutenant: true, RankLieutenantM: true, RankLieutenantE: true,
	RankEnsign: true, RankEnsignM: true, RankEnsignE: true,
}

func (r Rank) IsOfficer() bool {
	return officerRanks[r]
}

type Duty string

const (
	DutyCaptain          Duty = "Captain"
	DutyExecutiveOfficer Duty = "Executive Officer"
	DutyDPO              Duty = "DPO"
	DutyBoatswain        Duty = "Boatswain"
	DutySignalman        Duty = "Signalman"
	DutyCook             Duty = "Cook"
	DutyArmamentsOfficer Duty = "Armaments Officer"
	DutyEngineRoom       Duty = "Engine Room Officer"
	DutySupplyOfficer    Duty = "Supply Officer"
)

// WeekdayOnlyDuties 这些职务只能在工作日站 AF 更
var WeekdayOnlyDuties = map[Duty]bool{
	DutyExecutiveOfficer: true,
	DutyDPO:              true,
}

type Person struct {
	ID             int64     `json:"id"`
	RegistryNumber string    `json:"registryNumber"`
	FullName       string    `json:"fullName"`
	Rank           Rank      `json:"rank"`
	Specialty      string    `json:"specialty"`
	Duty           Duty      `json:"duty"`
	PrimaryWatch   WatchType `json:"primaryWatch"`
	AlternateWatch WatchType `json:"alternateWatch"`
	AtSeaWatch     WatchType `json:"atSeaWatch"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}

func (p *Person) IsCaptain() bool {
	return p.Duty == DutyCaptain
}

func (p *Person) IsWeekdayOnly() bool {
	return WeekdayOnlyDuties[p.Duty]
}

// RankEligibleWatches 返回某个军衔可以站的更种：
// 军官只站 AF，Warrant Officer 什么更都可以站，其余军衔站 YF 系的四种更
func (p *Person) RankEligibleWatches() []WatchType {
	switch {
	case p.Rank.IsOfficer():
		return []WatchType{WatchAF}
	case p.Rank == RankWarrantOfficer:
		return []WatchType{WatchAF, WatchYF, WatchYFM, WatchBYFM, WatchBYF}
	default:
		return []WatchType{WatchYF, WatchYFM, WatchBYFM, WatchBYF}
	}
}

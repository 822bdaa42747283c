package seed

import (
	"log/slog"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	"github.com/hs-nautilus/watchbill/backend/internal/repository"
)

// realRoster 一条真实舰艇的在港值更花名册，
// 舰长不站更，副长和值更官只在工作日站 AF 更
var realRoster = []domain.Person{
	{RegistryNumber: "N-10001", FullName: "Nikolaos Papadopoulos", Rank: domain.RankCommander, Duty: domain.DutyCaptain},
	{RegistryNumber: "N-10002", FullName: "Georgios Nikolaou", Rank: domain.RankLieutenantCommander, Duty: domain.DutyExecutiveOfficer, PrimaryWatch: domain.WatchAF},
	{RegistryNumber: "N-10003", FullName: "Dimitrios Georgiou", Rank: domain.RankLieutenant, Duty: domain.DutyDPO, PrimaryWatch: domain.WatchAF},
	{RegistryNumber: "N-10004", FullName: "Ioannis Dimitriou", Rank: domain.RankLieutenant, Duty: domain.DutyArmamentsOfficer, PrimaryWatch: domain.WatchAF},
	{RegistryNumber: "N-10005", FullName: "Konstantinos Ioannou", Rank: domain.RankLieutenantM, Duty: domain.DutyEngineRoom, PrimaryWatch: domain.WatchAF},
	{RegistryNumber: "N-10006", FullName: "Christos Christodoulou", Rank: domain.RankEnsign, Duty: domain.DutySupplyOfficer, PrimaryWatch: domain.WatchAF},
	{RegistryNumber: "N-10007", FullName: "Panagiotis Vasileiou", Rank: domain.RankEnsignE, PrimaryWatch: domain.WatchAF},
	{RegistryNumber: "N-10008", FullName: "Vasileios Antoniou", Rank: domain.RankWarrantOfficer, Duty: domain.DutyBoatswain, PrimaryWatch: domain.WatchYF, AlternateWatch: domain.WatchAF},
	{RegistryNumber: "N-10009", FullName: "Athanasios Karagiannis", Rank: domain.RankChiefPettyOfficer, Duty: domain.DutySignalman, PrimaryWatch: domain.WatchYF, AlternateWatch: domain.WatchYFM},
	{RegistryNumber: "N-10010", FullName: "Michail Oikonomou", Rank: domain.RankChiefPettyOfficer, PrimaryWatch: domain.WatchYF},
	{RegistryNumber: "N-10011", FullName: "Evangelos Makris", Rank: domain.RankSeniorPettyOfficer, PrimaryWatch: domain.WatchYF, AlternateWatch: domain.WatchBYF},
	{RegistryNumber: "N-10012", FullName: "Spyridon Alexiou", Rank: domain.RankSeniorPettyOfficer, PrimaryWatch: domain.WatchYFM},
	{RegistryNumber: "N-10013", FullName: "Andreas Stavrou", Rank: domain.RankPettyOfficer, PrimaryWatch: domain.WatchYFM, AlternateWatch: domain.WatchYF},
	{RegistryNumber: "N-10014", FullName: "Stylianos Panagiotou", Rank: domain.RankPettyOfficer, PrimaryWatch: domain.WatchYF},
	{RegistryNumber: "N-10015", FullName: "Theodoros Michailidis", Rank: domain.RankPettyOfficer, Duty: domain.DutyCook, PrimaryWatch: domain.WatchBYFM},
	{RegistryNumber: "N-10016", FullName: "Nikolaos Georgiou", Rank: domain.RankSeaman, PrimaryWatch: domain.WatchBYFM, AlternateWatch: domain.WatchBYF},
	{RegistryNumber: "N-10017", FullName: "Georgios Dimitriou", Rank: domain.RankSeaman, PrimaryWatch: domain.WatchBYFM},
	{RegistryNumber: "N-10018", FullName: "Dimitrios Ioannou", Rank: domain.RankSeaman, PrimaryWatch: domain.WatchYFM, AlternateWatch: domain.WatchBYFM},
	{RegistryNumber: "N-10019", FullName: "Ioannis Christodoulou", Rank: domain.RankSailor, PrimaryWatch: domain.WatchBYF},
	{RegistryNumber: "N-10020", FullName: "Konstantinos Vasileiou", Rank: domain.RankSailor, PrimaryWatch: domain.WatchBYF, AlternateWatch: domain.WatchBYFM},
	{RegistryNumber: "N-10021", FullName: "Christos Antoniou", Rank: domain.RankSailor, PrimaryWatch: domain.WatchBYF},
	{RegistryNumber: "N-10022", FullName: "Panagiotis Karagiannis", Rank: domain.RankSailor, PrimaryWatch: domain.WatchBYFM, AlternateWatch: domain.WatchBYF},
}

// SeedRealData 插入真实花名册、下个月的示例日历和一条示例休假
func SeedRealData(r *repository.Repository) {
	cnt := 0
	var onLeaveID int64
	for i := range realRoster {
		p := realRoster[i]
		if err := r.CreatePerson(&p); err != nil {
			slog.Error("无法插入人员", "registryNumber", p.RegistryNumber, "error", err)
			continue
		}
		// 随便挑一个军士长作为示例休假的对象
		if p.Rank == domain.RankChiefPettyOfficer && onLeaveID == 0 {
			onLeaveID = p.ID
		}
		cnt++
	}
	slog.Info("插入花名册成功", "count", cnt)

	// 下个月的示例日历：月中一段在航，外加一个节假日
	next := time.Now().AddDate(0, 1, 0)
	first := time.Date(next.Year(), next.Month(), 1, 0, 0, 0, 0, time.UTC)

	mc := &domain.MonthCalendar{
		Year:  first.Year(),
		Month: first.Month(),
		AtSeaRanges: []domain.DateRange{
			{Start: first.AddDate(0, 0, 9), End: first.AddDate(0, 0, 13)},
		},
		Holidays: []time.Time{first.AddDate(0, 0, 24)},
	}

	if err := r.UpsertMonthCalendar(mc); err != nil {
		slog.Error("无法插入示例日历", "error", err)
		return
	}
	slog.Info("插入示例日历成功", "year", mc.Year, "month", int(mc.Month))

	if onLeaveID == 0 {
		return
	}

	leave := &domain.LeaveRecord{
		PersonID: onLeaveID,
		Type:     domain.LeaveRegular,
		Range: domain.DateRange{
			Start: first.AddDate(0, 0, 4),
			End:   first.AddDate(0, 0, 8),
		},
		Comments: "示例休假",
	}
	if err := r.CreateLeaveRecord(leave); err != nil {
		slog.Error("无法插入示例休假", "error", err)
		return
	}
	slog.Info("插入示例休假成功", "personID", onLeaveID)
}

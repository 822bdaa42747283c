package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errors.New("日期格式应为 YYYY-MM-DD")
	}
	return domain.CivilDate(t), nil
}

// monthRangeFromQuery 从查询参数 year 和 month 得到该月的首尾日期
func monthRangeFromQuery(r *http.Request) (start, end time.Time, err error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 || year > 9999 {
		return start, end, errors.New("年份无效")
	}

	monthInt, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || monthInt < 1 || monthInt > 12 {
		return start, end, errors.New("月份无效")
	}

	start = time.Date(year, time.Month(monthInt), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end, nil
}

func (h *Handler) CreateLeaveRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PersonID  int64  `json:"personID" validate:"required"`
		Type      string `json:"type" validate:"required"`
		StartDate string `json:"startDate" validate:"required"`
		EndDate   string `json:"endDate" validate:"required"`
		Comments  string `json:"comments"`
	}

	if err := h.decodeJSON(r, &req); err != nil {
		h.invalidRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.invalidRequest(w, r, err)
		return
	}

	leaveType := domain.LeaveType(req.Type)
	known := false
	for _, lt := range domain.LeaveTypes {
		if lt == leaveType {
			known = true
			break
		}
	}
	if !known {
		h.invalidRequest(w, r, errors.New("未知的休假类型"))
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		h.invalidRequest(w, r, err)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		h.invalidRequest(w, r, err)
		return
	}
	if end.Before(start) {
		h.invalidRequest(w, r, errors.New("结束日期不能早于开始日期"))
		return
	}

	record := &domain.LeaveRecord{
		PersonID: req.PersonID,
		Type:     leaveType,
		Range:    domain.DateRange{Start: start, End: end},
		Comments: req.Comments,
	}

	if err := h.repository.CreateLeaveRecord(record); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "leave_records_person_id_fkey":
			h.invalidRequest(w, r, errors.New("人员不存在"))
		default:
			h.serverError(w, r, err)
		}
		return
	}

	h.respondOK(w, r, "休假记录创建成功", record)
}

func (h *Handler) GetLeaveRecords(w http.ResponseWriter, r *http.Request) {
	start, end, err := monthRangeFromQuery(r)
	if err != nil {
		h.invalidRequest(w, r, err)
		return
	}

	records, err := h.repository.GetLeaveRecordsOverlapping(start, end)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.respondOK(w, r, "获取休假记录成功", records)
}

func (h *Handler) DeleteLeaveRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(w, r, "记录ID无效")
		return
	}

	if _, err := h.repository.GetLeaveRecordByID(id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.respondError(w, r, "休假记录不存在")
		default:
			h.serverError(w, r, err)
		}
		return
	}

	if err := h.repository.DeleteLeaveRecord(id); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.respondOK(w, r, "删除休假记录成功", nil)
}

func (h *Handler) CreateUnavailabilityEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PersonID  int64  `json:"personID" validate:"required"`
		StartDate string `json:"startDate" validate:"required"`
		EndDate   string `json:"endDate" validate:"required"`
		Reason    string `json:"reason"`
	}

	if err := h.decodeJSON(r, &req); err != nil {
		h.invalidRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.invalidRequest(w, r, err)
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		h.invalidRequest(w, r, err)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		h.invalidRequest(w, r, err)
		return
	}
	if end.Before(start) {
		h.invalidRequest(w, r, errors.New("结束日期不能早于开始日期"))
		return
	}

	entry := &domain.UnavailabilityEntry{
		PersonID: req.PersonID,
		Range:    domain.DateRange{Start: start, End: end},
		Reason:   req.Reason,
	}

	if err := h.repository.CreateUnavailabilityEntry(entry); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "unavailability_entries_person_id_fkey":
			h.invalidRequest(w, r, errors.New("人员不存在"))
		default:
			h.serverError(w, r, err)
		}
		return
	}

	h.respondOK(w, r, "不可用记录创建成功", entry)
}

func (h *Handler) GetUnavailabilityEntries(w http.ResponseWriter, r *http.Request) {
	start, end, err := monthRangeFromQuery(r)
	if err != nil {
		h.invalidRequest(w, r, err)
		return
	}

	entries, err := h.repository.GetUnavailabilityEntriesOverlapping(start, end)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.respondOK(w, r, "获取不可用记录成功", entries)
}

func (h *Handler) DeleteUnavailabilityEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(w, r, "记录ID无效")
		return
	}

	if err := h.repository.DeleteUnavailabilityEntry(id); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.respondOK(w, r, "删除不可用记录成功", nil)
}

func (h *Handler) CreatePreferenceEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PersonID int64  `json:"personID" validate:"required"`
		Date     string `json:"date" validate:"required"`
		Watch    string `json:"watch"`
	}

	if err := h.decodeJSON(r, &req); err != nil {
		h.invalidRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.invalidRequest(w, r, err)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.invalidRequest(w, r, err)
		return
	}

	watch := domain.WatchType(req.Watch)
	if watch != "" && !watch.IsValid() {
		h.invalidRequest(w, r, errors.New("未知的更种"))
		return
	}

	entry := &domain.PreferenceEntry{
		PersonID: req.PersonID,
		Date:     date,
		Watch:    watch,
	}

	if err := h.repository.CreatePreferenceEntry(entry); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "preference_entries_person_id_fkey":
			h.invalidRequest(w, r, errors.New("人员不存在"))
		default:
			h.serverError(w, r, err)
		}
		return
	}

	h.respondOK(w, r, "偏好记录创建成功", entry)
}

func (h *Handler) GetPreferenceEntries(w http.ResponseWriter, r *http.Request) {
	start, end, err := monthRangeFromQuery(r)
	if err != nil {
		h.invalidRequest(w, r, err)
		return
	}

	entries, err := h.repository.GetPreferenceEntriesBetween(start, end)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.respondOK(w, r, "获取偏好记录成功", entries)
}

func (h *Handler) DeletePreferenceEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(w, r, "记录ID无效")
		return
	}

	if err := h.repository.DeletePreferenceEntry(id); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.respondOK(w, r, "删除偏好记录成功", nil)
}

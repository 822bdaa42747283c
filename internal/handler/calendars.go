package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	"github.com/hs-nautilus/watchbill/backend/internal/utils"
)

func (h *Handler) UpsertMonthCalendar(w http.ResponseWriter, r *http.Request) {
	year := r.Context().Value(YearCtxKey).(int)
	month := r.Context().Value(MonthCtxKey).(time.Month)

	var req struct {
		AtSeaRanges []struct {
			StartDate string `json:"startDate" validate:"required"`
			EndDate   string `json:"endDate" validate:"required"`
		} `json:"atSeaRanges" validate:"dive"`
		Holidays []string `json:"holidays"`
	}

	if err := h.decodeJSON(r, &req); err != nil {
		h.invalidRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.invalidRequest(w, r, err)
		return
	}

	mc := &domain.MonthCalendar{
		Year:        year,
		Month:       month,
		AtSeaRanges: make([]domain.DateRange, 0, len(req.AtSeaRanges)),
		Holidays:    make([]time.Time, 0, len(req.Holidays)),
	}

	for _, rg := range req.AtSeaRanges {
		start, err := parseDate(rg.StartDate)
		if err != nil {
			h.invalidRequest(w, r, err)
			return
		}
		end, err := parseDate(rg.EndDate)
		if err != nil {
			h.invalidRequest(w, r, err)
			return
		}
		mc.AtSeaRanges = append(mc.AtSeaRanges, domain.DateRange{Start: start, End: end})
	}

	for _, s := range req.Holidays {
		d, err := parseDate(s)
		if err != nil {
			h.invalidRequest(w, r, err)
			return
		}
		mc.Holidays = append(mc.Holidays, d)
	}

	if err := utils.ValidateMonthCalendar(mc); err != nil {
		h.invalidRequest(w, r, err)
		return
	}

	if err := h.repository.UpsertMonthCalendar(mc); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.respondOK(w, r, "月度日历保存成功", mc)
}

func (h *Handler) GetMonthCalendar(w http.ResponseWriter, r *http.Request) {
	year := r.Context().Value(YearCtxKey).(int)
	month := r.Context().Value(MonthCtxKey).(time.Month)

	mc, err := h.repository.GetMonthCalendar(year, month)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.respondError(w, r, "该月的日历不存在")
		default:
			h.serverError(w, r, err)
		}
		return
	}

	h.respondOK(w, r, "获取月度日历成功", mc)
}

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/calendar"
	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	"github.com/hs-nautilus/watchbill/backend/internal/scheduler"
	"github.com/redis/go-redis/v9"
)

func watchBillCacheKey(year int, month time.Month) string {
	return fmt.Sprintf("watch_bill_%d_%d", year, int(month))
}

// buildMonthDays 读取该月的日历并展开成逐日序列，生成和查询更表时都要用到
func (h *Handler) buildMonthDays(year int, month time.Month) ([]domain.Day, error) {
	mc, err := h.repository.GetMonthCalendar(year, month)
	if err != nil {
		return nil, err
	}

	return calendar.BuildMonth(year, month, mc.AtSeaRanges, mc.Holidays)
}

func (h *Handler) GenerateWatchBill(w http.ResponseWriter, r *http.Request) {
	year := r.Context().Value(YearCtxKey).(int)
	month := r.Context().Value(MonthCtxKey).(time.Month)

	// 规则表允许在请求中覆盖，不传就用舰上沿用的默认值
	var req struct {
		GapDays    *int `json:"gapDays"`
		WeekendCap *int `json:"weekendCap"`
		HolidayCap *int `json:"holidayCap"`
	}

	if r.ContentLength > 0 {
		if err := h.decodeJSON(r, &req); err != nil {
			h.invalidRequest(w, r, err)
			return
		}
	}

	cfg := scheduler.DefaultConfig()
	if req.GapDays != nil {
		cfg.GapDays = *req.GapDays
	}
	if req.WeekendCap != nil {
		cfg.WeekendCap = *req.WeekendCap
	}
	if req.HolidayCap != nil {
		cfg.HolidayCap = *req.HolidayCap
	}

	days, err := h.buildMonthDays(year, month)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.respondError(w, r, "请先维护该月的日历")
		case errors.Is(err, calendar.ErrInvalidCalendarInput):
			h.invalidRequest(w, r, err)
		default:
			h.serverError(w, r, err)
		}
		return
	}

	roster, err := h.repository.GetAllPersonnel()
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	leaves, err := h.repository.GetLeaveRecordsOverlapping(first, last)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	unavailable, err := h.repository.GetUnavailabilityEntriesOverlapping(first, last)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	prefs, err := h.repository.GetPreferenceEntriesBetween(first, last)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	s, err := scheduler.New(cfg, year, month, roster, days, leaves, unavailable, prefs)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrInvalidConfiguration):
			h.invalidRequest(w, r, err)
		default:
			h.serverError(w, r, err)
		}
		return
	}

	bill, err := s.Schedule()
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if err := h.repository.InsertWatchBill(bill); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.respondOK(w, r, "更表生成成功", bill)
}

func (h *Handler) GetWatchBill(w http.ResponseWriter, r *http.Request) {
	year := r.Context().Value(YearCtxKey).(int)
	month := r.Context().Value(MonthCtxKey).(time.Month)

	// 已发布的更表优先走 redis 缓存
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	cached, err := h.redisClient.Get(ctx, watchBillCacheKey(year, month)).Result()
	if err == nil {
		bill := &domain.WatchBill{}
		if err := json.Unmarshal([]byte(cached), bill); err == nil {
			h.respondOK(w, r, "获取更表成功", bill)
			return
		}
	} else if !errors.Is(err, redis.Nil) {
		h.serverError(w, r, err)
		return
	}

	bill, err := h.loadWatchBillWithStats(year, month)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.respondError(w, r, "该月的更表不存在")
		default:
			h.serverError(w, r, err)
		}
		return
	}

	h.respondOK(w, r, "获取更表成功", bill)
}

// loadWatchBillWithStats 从数据库取出更表并重新计算统计信息
func (h *Handler) loadWatchBillWithStats(year int, month time.Month) (*domain.WatchBill, error) {
	bill, err := h.repository.GetWatchBillByMonth(year, month)
	if err != nil {
		return nil, err
	}

	roster, err := h.repository.GetAllPersonnel()
	if err != nil {
		return nil, err
	}

	days, err := h.buildMonthDays(year, month)
	if err != nil {
		return nil, err
	}

	bill.Stats = scheduler.BuildStats(roster, bill.Assignments, days)

	return bill, nil
}

func (h *Handler) PublishWatchBill(w http.ResponseWriter, r *http.Request) {
	year := r.Context().Value(YearCtxKey).(int)
	month := r.Context().Value(MonthCtxKey).(time.Month)

	bill, err := h.loadWatchBillWithStats(year, month)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.respondError(w, r, "该月的更表不存在")
		default:
			h.serverError(w, r, err)
		}
		return
	}

	if bill.IsPublished {
		h.respondError(w, r, "该月的更表已经发布")
		return
	}

	if err := h.repository.PublishWatchBill(bill); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.respondError(w, r, "发布失败，请重试")
		default:
			h.serverError(w, r, err)
		}
		return
	}

	// 把发布后的更表缓存到 redis，查询时可以不落库
	billData, err := json.Marshal(bill)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	if err := h.redisClient.Set(ctx, watchBillCacheKey(year, month), billData, time.Duration(h.config.Redis.BillCacheExpiration)*time.Hour).Err(); err != nil {
		h.serverError(w, r, err)
		return
	}

	// 给所有在职用户发邮件通知
	users, err := h.repository.GetAllUsers()
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	for _, user := range users {
		if !user.IsActive {
			continue
		}

		if err := h.publishMail(domain.MailMessage{
			Type: "watch_bill_published",
			To:   user.Email,
			Data: domain.WatchBillPublishedMailData{
				FullName: user.FullName,
				Year:     year,
				Month:    int(month),
				Total:    len(bill.Assignments),
			},
		}); err != nil {
			h.serverError(w, r, err)
			return
		}
	}

	h.respondOK(w, r, "更表发布成功", bill)
}

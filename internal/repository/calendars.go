package repository

import (
	"context"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
)

// UpsertMonthCalendar 覆盖写入某个月的日历（在航区间和节假日作为子表整体替换）
func (r *Repository) UpsertMonthCalendar(mc *domain.MonthCalendar) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 先把该月原先的日历删除再插入
	query := `DELETE FROM month_calendars WHERE year = $1 AND month = $2`
	if _, err := tx.ExecContext(ctx, query, mc.Year, int(mc.Month)); err != nil {
		return err
	}

	query = `
		INSERT INTO month_calendars (year, month)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	if err := tx.QueryRowContext(ctx, query, mc.Year, int(mc.Month)).Scan(&mc.ID, &mc.CreatedAt, &mc.Version); err != nil {
		return err
	}

	for _, rg := range mc.AtSeaRanges {
		query := `
			INSERT INTO month_calendar_at_sea_ranges (month_calendar_id, start_date, end_date)
			VALUES ($1, $2, $3)
		`

		if _, err := tx.ExecContext(ctx, query, mc.ID, rg.Start, rg.End); err != nil {
			return err
		}
	}

	for _, h := range mc.Holidays {
		query := `
			INSERT INTO month_calendar_holidays (month_calendar_id, holiday_date)
			VALUES ($1, $2)
		`

		if _, err := tx.ExecContext(ctx, query, mc.ID, h); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetMonthCalendar(year int, month time.Month) (*domain.MonthCalendar, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, created_at, version
		FROM month_calendars
		WHERE year = $1 AND month = $2
	`

	mc := &domain.MonthCalendar{
		Year:  year,
		Month: month,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, year, int(month)).Scan(&mc.ID, &mc.CreatedAt, &mc.Version); err != nil {
		return nil, err
	}

	query = `
		SELECT start_date, end_date
		FROM month_calendar_at_sea_ranges
		WHERE month_calendar_id = $1
		ORDER BY start_date
	`

	rows, err := r.dbpool.QueryContext(ctx, query, mc.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mc.AtSeaRanges = make([]domain.DateRange, 0)
	for rows.Next() {
		var rg domain.DateRange
		if err := rows.Scan(&rg.Start, &rg.End); err != nil {
			return nil, err
		}
		mc.AtSeaRanges = append(mc.AtSeaRanges, rg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	query = `
		SELECT holiday_date
		FROM month_calendar_holidays
		WHERE month_calendar_id = $1
		ORDER BY holiday_date
	`

	hrows, err := r.dbpool.QueryContext(ctx, query, mc.ID)
	if err != nil {
		return nil, err
	}
	defer hrows.Close()

	mc.Holidays = make([]time.Time, 0)
	for hrows.Next() {
		var h time.Time
		if err := hrows.Scan(&h); err != nil {
			return nil, err
		}
		mc.Holidays = append(mc.Holidays, h)
	}

	if err := hrows.Err(); err != nil {
		return nil, err
	}

	return mc, nil
}

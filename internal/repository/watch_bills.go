package repository

import (
	"context"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
)

// InsertWatchBill 持久化一次排班运行的产物，同月旧更表（含其分配记录）整体替换
func (r *Repository) InsertWatchBill(bill *domain.WatchBill) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 先将该月之前的更表删除
	query := `DELETE FROM watch_bills WHERE year = $1 AND month = $2`
	if _, err := tx.ExecContext(ctx, query, bill.Year, int(bill.Month)); err != nil {
		return err
	}

	query = `
		INSERT INTO watch_bills (year, month)
		VALUES ($1, $2)
		RETURNING id, is_published, created_at, version
	`

	if err := tx.QueryRowContext(ctx, query, bill.Year, int(bill.Month)).Scan(&bill.ID, &bill.IsPublished, &bill.CreatedAt, &bill.Version); err != nil {
		return err
	}

	for _, a := range bill.Assignments {
		query := `
			INSERT INTO watch_bill_assignments (watch_bill_id, watch_date, watch, person_id)
			VALUES ($1, $2, $3, $4)
		`

		if _, err := tx.ExecContext(ctx, query, bill.ID, a.Date, a.Watch, a.PersonID); err != nil {
			return err
		}
	}

	for _, u := range bill.Unfilled {
		query := `
			INSERT INTO watch_bill_unfilled_slots (watch_bill_id, watch_date, watch, reason)
			VALUES ($1, $2, $3, $4)
		`

		if _, err := tx.ExecContext(ctx, query, bill.ID, u.Date, u.Watch, u.Reason); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// GetWatchBillByMonth 取出某个月的更表，统计信息由调用方重新计算
func (r *Repository) GetWatchBillByMonth(year int, month time.Month) (*domain.WatchBill, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, is_published, created_at, version
		FROM watch_bills
		WHERE year = $1 AND month = $2
	`

	bill := &domain.WatchBill{
		Year:  year,
		Month: month,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, year, int(month)).Scan(&bill.ID, &bill.IsPublished, &bill.CreatedAt, &bill.Version); err != nil {
		return nil, err
	}

	query = `
		SELECT watch_date, watch, person_id
		FROM watch_bill_assignments
		WHERE watch_bill_id = $1
		ORDER BY watch_date, watch
	`

	rows, err := r.dbpool.QueryContext(ctx, query, bill.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bill.Assignments = make([]domain.Assignment, 0)
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.Date, &a.Watch, &a.PersonID); err != nil {
			return nil, err
		}
		bill.Assignments = append(bill.Assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	query = `
		SELECT watch_date, watch, reason
		FROM watch_bill_unfilled_slots
		WHERE watch_bill_id = $1
		ORDER BY watch_date, watch
	`

	urows, err := r.dbpool.QueryContext(ctx, query, bill.ID)
	if err != nil {
		return nil, err
	}
	defer urows.Close()

	bill.Unfilled = make([]domain.UnfilledSlot, 0)
	for urows.Next() {
		var u domain.UnfilledSlot
		if err := urows.Scan(&u.Date, &u.Watch, &u.Reason); err != nil {
			return nil, err
		}
		bill.Unfilled = append(bill.Unfilled, u)
	}

	if err := urows.Err(); err != nil {
		return nil, err
	}

	return bill, nil
}

func (r *Repository) PublishWatchBill(bill *domain.WatchBill) error {
	query := `
		UPDATE watch_bills
		SET
			is_published = TRUE,
			version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, bill.ID, bill.Version).Scan(&bill.CreatedAt, &bill.Version); err != nil {
		return err
	}

	bill.IsPublished = true

	return nil
}

package repository

import (
	"context"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
)

func (r *Repository) CreateLeaveRecord(l *domain.LeaveRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO leave_records (person_id, leave_type, start_date, end_date, comments)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{l.PersonID, l.Type, l.Range.Start, l.Range.End, l.Comments}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&l.ID, &l.CreatedAt, &l.Version); err != nil {
		return err
	}

	return nil
}

// GetLeaveRecordsOverlapping 取出与 [start, end] 有任何交集的休假记录
func (r *Repository) GetLeaveRecordsOverlapping(start, end time.Time) ([]*domain.LeaveRecord, error) {
	query := `
		SELECT id, person_id, leave_type, start_date, end_date, comments, created_at, version
		FROM leave_records
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.LeaveRecord, 0)
	for rows.Next() {
		l := &domain.LeaveRecord{}
		dst := []any{&l.ID, &l.PersonID, &l.Type, &l.Range.Start, &l.Range.End, &l.Comments, &l.CreatedAt, &l.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		records = append(records, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) GetLeaveRecordByID(id int64) (*domain.LeaveRecord, error) {
	query := `
		SELECT person_id, leave_type, start_date, end_date, comments, created_at, version
		FROM leave_records WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	l := &domain.LeaveRecord{
		ID: id,
	}

	dst := []any{&l.PersonID, &l.Type, &l.Range.Start, &l.Range.End, &l.Comments, &l.CreatedAt, &l.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return l, nil
}

func (r *Repository) DeleteLeaveRecord(id int64) error {
	query := `
		DELETE FROM leave_records WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreateUnavailabilityEntry(e *domain.UnavailabilityEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO unavailability_entries (person_id, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{e.PersonID, e.Range.Start, e.Range.End, e.Reason}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetUnavailabilityEntriesOverlapping(start, end time.Time) ([]*domain.UnavailabilityEntry, error) {
	query := `
		SELECT id, person_id, start_date, end_date, reason, created_at, version
		FROM unavailability_entries
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.UnavailabilityEntry, 0)
	for rows.Next() {
		e := &domain.UnavailabilityEntry{}
		dst := []any{&e.ID, &e.PersonID, &e.Range.Start, &e.Range.End, &e.Reason, &e.CreatedAt, &e.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *Repository) DeleteUnavailabilityEntry(id int64) error {
	query := `
		DELETE FROM unavailability_entries WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreatePreferenceEntry(e *domain.PreferenceEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO preference_entries (person_id, pref_date, watch)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id, created_at, version
	`

	args := []any{e.PersonID, e.Date, e.Watch}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetPreferenceEntriesBetween(start, end time.Time) ([]*domain.PreferenceEntry, error) {
	query := `
		SELECT id, person_id, pref_date, COALESCE(watch, ''), created_at, version
		FROM preference_entries
		WHERE pref_date BETWEEN $1 AND $2
		ORDER BY pref_date, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.PreferenceEntry, 0)
	for rows.Next() {
		e := &domain.PreferenceEntry{}
		dst := []any{&e.ID, &e.PersonID, &e.Date, &e.Watch, &e.CreatedAt, &e.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *Repository) DeletePreferenceEntry(id int64) error {
	query := `
		DELETE FROM preference_entries WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
)

func (r *Repository) CreatePerson(p *domain.Person) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO personnel (registry_number, full_name, rank, specialty, duty, primary_watch, alternate_watch, at_sea_watch)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
		RETURNING id, is_active, created_at, version
	`

	args := []any{p.RegistryNumber, p.FullName, p.Rank, p.Specialty, p.Duty, p.PrimaryWatch, p.AlternateWatch, p.AtSeaWatch}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.Version); err != nil {
		return err
	}

	return nil
}

// scanPerson 把一行 personnel 扫进 Person，更位列允许为 NULL
func scanPerson(dst interface{ Scan(...any) error }, p *domain.Person) error {
	var primary, alternate, atSea sql.NullString

	if err := dst.Scan(&p.ID, &p.RegistryNumber, &p.FullName, &p.Rank, &p.Specialty, &p.Duty,
		&primary, &alternate, &atSea, &p.IsActive, &p.CreatedAt, &p.Version); err != nil {
		return err
	}

	p.PrimaryWatch = domain.WatchType(primary.String)
	p.AlternateWatch = domain.WatchType(alternate.String)
	p.AtSeaWatch = domain.WatchType(atSea.String)

	return nil
}

const personColumns = `id, registry_number, full_name, rank, specialty, duty, primary_watch, alternate_watch, at_sea_watch, is_active, created_at, version`

func (r *Repository) GetPersonByID(id int64) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM personnel WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	p := &domain.Person{}
	if err := scanPerson(r.dbpool.QueryRowContext(ctx, query, id), p); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *Repository) GetAllPersonnel() ([]*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM personnel ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	personnel := make([]*domain.Person, 0)
	for rows.Next() {
		p := &domain.Person{}
		if err := scanPerson(rows, p); err != nil {
			return nil, err
		}
		personnel = append(personnel, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return personnel, nil
}

func (r *Repository) UpdatePerson(p *domain.Person) error {
	query := `
		UPDATE personnel
		SET
			full_name = $1,
			rank = $2,
			specialty = $3,
			duty = $4,
			primary_watch = NULLIF($5, ''),
			alternate_watch = NULLIF($6, ''),
			at_sea_watch = NULLIF($7, ''),
			is_active = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING registry_number, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{p.FullName, p.Rank, p.Specialty, p.Duty, p.PrimaryWatch, p.AlternateWatch, p.AtSeaWatch, p.IsActive, p.ID, p.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.RegistryNumber, &p.CreatedAt, &p.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeletePerson(id int64) error {
	query := `
		DELETE FROM personnel WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

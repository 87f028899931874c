package applications

import (
	"context"
	"database/sql"
	"errors"

	"healthoffice-backend/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) q(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.DB)
}

const columns = `id, application_number, facility_id, facility_type, status, submitted_by_user_id, created_at, updated_at`

// Create inserts a new application.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (id, application_number, facility_id, facility_type, status, submitted_by_user_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.q(ctx).ExecContext(ctx, query,
		app.ID,
		app.ApplicationNumber,
		app.FacilityID,
		app.FacilityType,
		app.Status,
		app.SubmittedByUserID,
	)
	return err
}

// GetByID returns an application by ID.
func (r *PGRepo) GetByID(ctx context.Context, applicationID string) (Application, error) {
	query := `SELECT ` + columns + ` FROM applications WHERE id = $1 LIMIT 1`
	var a Application
	err := r.q(ctx).QueryRowContext(ctx, query, applicationID).Scan(
		&a.ID,
		&a.ApplicationNumber,
		&a.FacilityID,
		&a.FacilityType,
		&a.Status,
		&a.SubmittedByUserID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return a, nil
}

// List returns applications newest-first, optionally filtered by status, plus the total count.
func (r *PGRepo) List(ctx context.Context, status string, limit, offset int) ([]Application, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var (
		rows *sql.Rows
		err  error
	)
	if status != "" {
		query := `SELECT ` + columns + ` FROM applications WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		rows, err = r.q(ctx).QueryContext(ctx, query, status, limit, offset)
	} else {
		query := `SELECT ` + columns + ` FROM applications ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		rows, err = r.q(ctx).QueryContext(ctx, query, limit, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := scanAll(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if status != "" {
		err = r.q(ctx).QueryRowContext(ctx, `SELECT count(*) FROM applications WHERE status = $1`, status).Scan(&total)
	} else {
		err = r.q(ctx).QueryRowContext(ctx, `SELECT count(*) FROM applications`).Scan(&total)
	}
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListByFacility returns a facility's applications newest-first.
func (r *PGRepo) ListByFacility(ctx context.Context, facilityID string) ([]Application, error) {
	query := `SELECT ` + columns + ` FROM applications WHERE facility_id = $1 ORDER BY created_at DESC`
	rows, err := r.q(ctx).QueryContext(ctx, query, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

// UpdateStatus sets an application's lifecycle status.
func (r *PGRepo) UpdateStatus(ctx context.Context, applicationID, status string) error {
	const query = `UPDATE applications SET status = $1, updated_at = now() WHERE id = $2`
	res, err := r.q(ctx).ExecContext(ctx, query, status, applicationID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAll(rows *sql.Rows) ([]Application, error) {
	var out []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.ApplicationNumber, &a.FacilityID, &a.FacilityType, &a.Status, &a.SubmittedByUserID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

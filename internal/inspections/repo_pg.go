package inspections

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

const inspectionColumns = `id, application_id, inspector_id, status, scheduled_date, actual_visit_date, overall_score, notes, created_at, updated_at`

// Create inserts a new inspection.
func (r *PGRepo) Create(ctx context.Context, i Inspection) error {
	const query = `
INSERT INTO inspections (id, application_id, inspector_id, status, scheduled_date, actual_visit_date, overall_score, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	_, err := r.q(ctx).ExecContext(ctx, query,
		i.ID,
		i.ApplicationID,
		i.InspectorID,
		i.Status,
		i.ScheduledDate,
		i.ActualVisitDate,
		i.OverallScore,
		nullableText(i.Notes),
	)
	return err
}

// GetByID returns an inspection by ID.
func (r *PGRepo) GetByID(ctx context.Context, inspectionID string) (Inspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM inspections WHERE id = $1 LIMIT 1`
	row := r.q(ctx).QueryRowContext(ctx, query, inspectionID)
	i, err := scanInspection(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Inspection{}, ErrNotFound
		}
		return Inspection{}, err
	}
	return i, nil
}

// Update rewrites an inspection's mutable fields.
func (r *PGRepo) Update(ctx context.Context, i Inspection) error {
	const query = `
UPDATE inspections
SET status = $1, scheduled_date = $2, actual_visit_date = $3, overall_score = $4, notes = $5, updated_at = now()
WHERE id = $6`
	res, err := r.q(ctx).ExecContext(ctx, query,
		i.Status,
		i.ScheduledDate,
		i.ActualVisitDate,
		i.OverallScore,
		nullableText(i.Notes),
		i.ID,
	)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByInspector returns an inspector's inspections newest-first, plus the
// total count.
func (r *PGRepo) ListByInspector(ctx context.Context, inspectorID string, limit, offset int) ([]Inspection, int, error) {
	return r.listFiltered(ctx, `inspector_id`, inspectorID, limit, offset)
}

// ListByStatus returns inspections in the given status newest-first, plus the
// total count.
func (r *PGRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]Inspection, int, error) {
	return r.listFiltered(ctx, `status`, status, limit, offset)
}

func (r *PGRepo) listFiltered(ctx context.Context, column, value string, limit, offset int) ([]Inspection, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + inspectionColumns + ` FROM inspections WHERE ` + column + ` = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q(ctx).QueryContext(ctx, query, value, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := scanInspections(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.q(ctx).QueryRowContext(ctx, `SELECT count(*) FROM inspections WHERE `+column+` = $1`, value).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListByApplication returns an application's inspections oldest-first.
func (r *PGRepo) ListByApplication(ctx context.Context, applicationID string) ([]Inspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM inspections WHERE application_id = $1 ORDER BY created_at`
	rows, err := r.q(ctx).QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInspections(rows)
}

func scanInspections(rows *sql.Rows) ([]Inspection, error) {
	var out []Inspection
	for rows.Next() {
		i, err := scanInspection(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func scanInspection(scan func(...any) error) (Inspection, error) {
	var (
		i            Inspection
		actualVisit  sql.NullTime
		overallScore sql.NullFloat64
		notes        sql.NullString
	)
	err := scan(
		&i.ID,
		&i.ApplicationID,
		&i.InspectorID,
		&i.Status,
		&i.ScheduledDate,
		&actualVisit,
		&overallScore,
		&notes,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		return Inspection{}, err
	}
	if actualVisit.Valid {
		t := actualVisit.Time
		i.ActualVisitDate = &t
	}
	if overallScore.Valid {
		v := overallScore.Float64
		i.OverallScore = &v
	}
	if notes.Valid {
		i.Notes = notes.String
	}
	return i, nil
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ Repo = (*PGRepo)(nil)

package inspections

import (
	"context"
	"database/sql"
	"errors"

	"healthoffice-backend/internal/shared/storage/db"
)

// ScorePGRepo implements ScoreRepo using Postgres.
type ScorePGRepo struct {
	DB *sql.DB
}

func (r *ScorePGRepo) q(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.DB)
}

const scoreColumns = `id, inspection_id, criterion_code, description, max_score, score, created_at`

// CreateBatch inserts score rows.
func (r *ScorePGRepo) CreateBatch(ctx context.Context, scores []Score) error {
	const query = `
INSERT INTO inspection_scores (id, inspection_id, criterion_code, description, max_score, score, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())`
	for _, s := range scores {
		if _, err := r.q(ctx).ExecContext(ctx, query, s.ID, s.InspectionID, s.CriterionCode, s.Description, s.MaxScore, s.Score); err != nil {
			return err
		}
	}
	return nil
}

// GetByID returns a score row by ID.
func (r *ScorePGRepo) GetByID(ctx context.Context, scoreID string) (Score, error) {
	query := `SELECT ` + scoreColumns + ` FROM inspection_scores WHERE id = $1 LIMIT 1`
	var (
		s     Score
		value sql.NullFloat64
	)
	err := r.q(ctx).QueryRowContext(ctx, query, scoreID).Scan(&s.ID, &s.InspectionID, &s.CriterionCode, &s.Description, &s.MaxScore, &value, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Score{}, ErrNotFound
		}
		return Score{}, err
	}
	if value.Valid {
		v := value.Float64
		s.Score = &v
	}
	return s, nil
}

// ListByInspection returns an inspection's score rows in insertion order.
func (r *ScorePGRepo) ListByInspection(ctx context.Context, inspectionID string) ([]Score, error) {
	query := `SELECT ` + scoreColumns + ` FROM inspection_scores WHERE inspection_id = $1 ORDER BY created_at, id`
	rows, err := r.q(ctx).QueryContext(ctx, query, inspectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Score
	for rows.Next() {
		var (
			s     Score
			value sql.NullFloat64
		)
		if err := rows.Scan(&s.ID, &s.InspectionID, &s.CriterionCode, &s.Description, &s.MaxScore, &value, &s.CreatedAt); err != nil {
			return nil, err
		}
		if value.Valid {
			v := value.Float64
			s.Score = &v
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateScore sets the recorded value of one score row.
func (r *ScorePGRepo) UpdateScore(ctx context.Context, scoreID string, value *float64) error {
	res, err := r.q(ctx).ExecContext(ctx, `UPDATE inspection_scores SET score = $1 WHERE id = $2`, value, scoreID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ ScoreRepo = (*ScorePGRepo)(nil)

package settings

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

const columns = `id, category, setting_key, value, updated_at`

// Upsert inserts or replaces the value for (category, key).
func (r *PGRepo) Upsert(ctx context.Context, s Setting) (Setting, error) {
	const query = `
INSERT INTO system_settings (id, category, setting_key, value, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (category, setting_key)
DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := r.q(ctx).ExecContext(ctx, query, s.ID, s.Category, s.Key, s.Value); err != nil {
		return Setting{}, err
	}
	return r.Get(ctx, s.Category, s.Key)
}

// Get returns the setting for (category, key).
func (r *PGRepo) Get(ctx context.Context, category, key string) (Setting, error) {
	query := `SELECT ` + columns + ` FROM system_settings WHERE category = $1 AND setting_key = $2 LIMIT 1`
	var s Setting
	err := r.q(ctx).QueryRowContext(ctx, query, category, key).Scan(&s.ID, &s.Category, &s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Setting{}, ErrNotFound
		}
		return Setting{}, err
	}
	return s, nil
}

// ListByCategory returns all settings in a category, ordered by key.
func (r *PGRepo) ListByCategory(ctx context.Context, category string) ([]Setting, error) {
	query := `SELECT ` + columns + ` FROM system_settings WHERE category = $1 ORDER BY setting_key`
	rows, err := r.q(ctx).QueryContext(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

// List returns all settings ordered by category then key.
func (r *PGRepo) List(ctx context.Context) ([]Setting, error) {
	query := `SELECT ` + columns + ` FROM system_settings ORDER BY category, setting_key`
	rows, err := r.q(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

// Delete removes the setting for (category, key).
func (r *PGRepo) Delete(ctx context.Context, category, key string) error {
	res, err := r.q(ctx).ExecContext(ctx, `DELETE FROM system_settings WHERE category = $1 AND setting_key = $2`, category, key)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAll(rows *sql.Rows) ([]Setting, error) {
	var out []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.ID, &s.Category, &s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

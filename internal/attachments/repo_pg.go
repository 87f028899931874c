package attachments

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

const columns = `id, application_id, uploaded_by_user_id, file_name, mime_type, size_bytes, storage_provider, storage_key, created_at`

// Create inserts attachment metadata.
func (r *PGRepo) Create(ctx context.Context, a Attachment) error {
	const query = `
INSERT INTO attachments (id, application_id, uploaded_by_user_id, file_name, mime_type, size_bytes, storage_provider, storage_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`
	_, err := r.q(ctx).ExecContext(ctx, query,
		a.ID,
		a.ApplicationID,
		a.UploadedByUserID,
		a.FileName,
		a.MimeType,
		a.SizeBytes,
		a.StorageProvider,
		a.StorageKey,
	)
	return err
}

// GetByID returns attachment metadata by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Attachment, error) {
	query := `SELECT ` + columns + ` FROM attachments WHERE id = $1 LIMIT 1`
	var a Attachment
	err := r.q(ctx).QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.ApplicationID,
		&a.UploadedByUserID,
		&a.FileName,
		&a.MimeType,
		&a.SizeBytes,
		&a.StorageProvider,
		&a.StorageKey,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Attachment{}, ErrNotFound
		}
		return Attachment{}, err
	}
	return a, nil
}

// ListByApplication returns an application's attachments newest-first.
func (r *PGRepo) ListByApplication(ctx context.Context, applicationID string) ([]Attachment, error) {
	query := `SELECT ` + columns + ` FROM attachments WHERE application_id = $1 ORDER BY created_at DESC`
	rows, err := r.q(ctx).QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attachment
	for rows.Next() {
		var a Attachment
		if err := rows.Scan(&a.ID, &a.ApplicationID, &a.UploadedByUserID, &a.FileName, &a.MimeType, &a.SizeBytes, &a.StorageProvider, &a.StorageKey, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes attachment metadata.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q(ctx).ExecContext(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)

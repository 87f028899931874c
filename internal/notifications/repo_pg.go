package notifications

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

const columns = `id, user_id, title_ar, title_en, body_ar, body_en, severity, read_at, created_at`

// Create inserts a notification.
func (r *PGRepo) Create(ctx context.Context, n Notification) error {
	const query = `
INSERT INTO notifications (id, user_id, title_ar, title_en, body_ar, body_en, severity, read_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, now())`
	_, err := r.q(ctx).ExecContext(ctx, query,
		n.ID,
		n.UserID,
		n.TitleAr,
		n.TitleEn,
		n.BodyAr,
		n.BodyEn,
		n.Severity,
	)
	return err
}

// GetByID returns a notification by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Notification, error) {
	query := `SELECT ` + columns + ` FROM notifications WHERE id = $1 LIMIT 1`
	return r.scanOne(r.q(ctx).QueryRowContext(ctx, query, id))
}

// ListByUser returns a user's notifications newest-first, plus the total count.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Notification, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + columns + ` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q(ctx).QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		var readAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.UserID, &n.TitleAr, &n.TitleEn, &n.BodyAr, &n.BodyEn, &n.Severity, &readAt, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		if readAt.Valid {
			t := readAt.Time
			n.ReadAt = &t
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.q(ctx).QueryRowContext(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *PGRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.q(ctx).QueryRowContext(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL`, userID).Scan(&total)
	return total, err
}

// MarkRead stamps a notification as read, scoping by user to prevent
// cross-account acknowledgement.
func (r *PGRepo) MarkRead(ctx context.Context, id, userID string) (Notification, error) {
	const query = `
UPDATE notifications SET read_at = now()
WHERE id = $1 AND user_id = $2 AND read_at IS NULL`
	if _, err := r.q(ctx).ExecContext(ctx, query, id, userID); err != nil {
		return Notification{}, err
	}
	lookup := `SELECT ` + columns + ` FROM notifications WHERE id = $1 AND user_id = $2 LIMIT 1`
	return r.scanOne(r.q(ctx).QueryRowContext(ctx, lookup, id, userID))
}

func (r *PGRepo) scanOne(row *sql.Row) (Notification, error) {
	var n Notification
	var readAt sql.NullTime
	err := row.Scan(&n.ID, &n.UserID, &n.TitleAr, &n.TitleEn, &n.BodyAr, &n.BodyEn, &n.Severity, &readAt, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Notification{}, ErrNotFound
		}
		return Notification{}, err
	}
	if readAt.Valid {
		t := readAt.Time
		n.ReadAt = &t
	}
	return n, nil
}

var _ Repo = (*PGRepo)(nil)

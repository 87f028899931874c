package audit

import (
	"context"
	"database/sql"

	"healthoffice-backend/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) q(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.DB)
}

// Append inserts a new audit entry.
func (r *PGRepo) Append(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO audit_logs (id, actor_admin_id, actor_user_id, action, entity_type, entity_id, note, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())`
	_, err := r.q(ctx).ExecContext(ctx, query,
		entry.ID,
		nullable(entry.ActorAdminID),
		nullable(entry.ActorUserID),
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		nullable(entry.Note),
	)
	return err
}

// List returns entries newest-first, optionally filtered by entity type, plus the total count.
func (r *PGRepo) List(ctx context.Context, entityType string, limit, offset int) ([]Entry, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	const columns = `id, actor_admin_id, actor_user_id, action, entity_type, entity_id, note, created_at`
	var (
		rows *sql.Rows
		err  error
	)
	if entityType != "" {
		rows, err = r.q(ctx).QueryContext(ctx,
			`SELECT `+columns+` FROM audit_logs WHERE entity_type = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			entityType, limit, offset)
	} else {
		rows, err = r.q(ctx).QueryContext(ctx,
			`SELECT `+columns+` FROM audit_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var actorAdmin, actorUser, note sql.NullString
		if err := rows.Scan(&e.ID, &actorAdmin, &actorUser, &e.Action, &e.EntityType, &e.EntityID, &note, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		e.ActorAdminID = actorAdmin.String
		e.ActorUserID = actorUser.String
		e.Note = note.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if entityType != "" {
		err = r.q(ctx).QueryRowContext(ctx, `SELECT count(*) FROM audit_logs WHERE entity_type = $1`, entityType).Scan(&total)
	} else {
		err = r.q(ctx).QueryRowContext(ctx, `SELECT count(*) FROM audit_logs`).Scan(&total)
	}
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)

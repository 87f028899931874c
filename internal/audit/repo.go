package audit

import "context"

// Repo defines persistence operations for the audit log. Entries are
// append-only; there is no update or delete.
type Repo interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context, entityType string, limit, offset int) ([]Entry, int, error)
}

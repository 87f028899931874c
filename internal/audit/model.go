package audit

import "time"

// Entry is one immutable audit log record.
type Entry struct {
	ID           string
	ActorAdminID string
	ActorUserID  string
	Action       string
	EntityType   string
	EntityID     string
	Note         string
	CreatedAt    time.Time
}

package notifications

import "time"

// Severity levels for portal notifications.
const (
	SeverityInfo    = "INFO"
	SeverityWarning = "WARNING"
	SeverityError   = "ERROR"
)

// Notification is a bilingual message delivered to a facility portal user.
type Notification struct {
	ID        string
	UserID    string
	TitleAr   string
	TitleEn   string
	BodyAr    string
	BodyEn    string
	Severity  string
	ReadAt    *time.Time
	CreatedAt time.Time
}

// Read reports whether the notification has been acknowledged.
func (n Notification) Read() bool {
	return n.ReadAt != nil
}

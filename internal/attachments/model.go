package attachments

import "time"

// Attachment is a stored document linked to a license application.
type Attachment struct {
	ID               string
	ApplicationID    string
	UploadedByUserID string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageProvider  string
	StorageKey       string
	CreatedAt        time.Time
}

package attachments

import "time"

// AttachmentResponse is the API shape of attachment metadata.
type AttachmentResponse struct {
	ID               string    `json:"id"`
	ApplicationID    string    `json:"applicationId"`
	UploadedByUserID string    `json:"uploadedByUserId"`
	FileName         string    `json:"fileName"`
	MimeType         string    `json:"mimeType"`
	SizeBytes        int64     `json:"sizeBytes"`
	CreatedAt        time.Time `json:"createdAt"`
}

func toResponse(a Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:               a.ID,
		ApplicationID:    a.ApplicationID,
		UploadedByUserID: a.UploadedByUserID,
		FileName:         a.FileName,
		MimeType:         a.MimeType,
		SizeBytes:        a.SizeBytes,
		CreatedAt:        a.CreatedAt,
	}
}

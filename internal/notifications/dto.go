package notifications

import "time"

// NotificationResponse is the API shape of one notification.
type NotificationResponse struct {
	ID        string     `json:"id"`
	TitleAr   string     `json:"titleAr"`
	TitleEn   string     `json:"titleEn"`
	BodyAr    string     `json:"bodyAr"`
	BodyEn    string     `json:"bodyEn"`
	Severity  string     `json:"severity"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		TitleAr:   n.TitleAr,
		TitleEn:   n.TitleEn,
		BodyAr:    n.BodyAr,
		BodyEn:    n.BodyEn,
		Severity:  n.Severity,
		Read:      n.Read(),
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

package settings

import "time"

// SettingResponse is the API shape of one setting.
type SettingResponse struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(s Setting) SettingResponse {
	return SettingResponse{
		ID:        s.ID,
		Category:  s.Category,
		Key:       s.Key,
		Value:     s.Value,
		UpdatedAt: s.UpdatedAt,
	}
}

package audit

import "time"

// EntryResponse is the API shape of one audit log entry.
type EntryResponse struct {
	ID           string    `json:"id"`
	ActorAdminID string    `json:"actorAdminId,omitempty"`
	ActorUserID  string    `json:"actorUserId,omitempty"`
	Action       string    `json:"action"`
	EntityType   string    `json:"entityType"`
	EntityID     string    `json:"entityId"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:           e.ID,
		ActorAdminID: e.ActorAdminID,
		ActorUserID:  e.ActorUserID,
		Action:       e.Action,
		EntityType:   e.EntityType,
		EntityID:     e.EntityID,
		Note:         e.Note,
		CreatedAt:    e.CreatedAt,
	}
}

package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service records audit trail entries for admin and portal actions.
type Service struct {
	Repo Repo
}

// NewService constructs an audit Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Log appends an entry attributed to an admin actor (or no actor at all
// when both actor IDs are empty, e.g. system jobs).
func (s *Service) Log(ctx context.Context, actorAdminID, actorUserID, action, entityType, entityID, note string) error {
	action = strings.TrimSpace(action)
	if action == "" {
		return fmt.Errorf("audit: %w: action is required", ErrInvalidInput)
	}
	entry := Entry{
		ID:           uuid.NewString(),
		ActorAdminID: actorAdminID,
		ActorUserID:  actorUserID,
		Action:       action,
		EntityType:   entityType,
		EntityID:     entityID,
		Note:         note,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("audit: append entry: %w", err)
	}
	return nil
}

// LogUser appends an entry attributed to a facility portal user.
func (s *Service) LogUser(ctx context.Context, actorUserID, action, entityType, entityID, note string) error {
	return s.Log(ctx, "", actorUserID, action, entityType, entityID, note)
}

// List returns recent entries, optionally filtered by entity type.
func (s *Service) List(ctx context.Context, entityType string, limit, offset int) ([]Entry, int, error) {
	return s.Repo.List(ctx, entityType, limit, offset)
}

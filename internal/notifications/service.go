package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service manages bilingual portal notifications.
type Service struct {
	Repo Repo
}

// NewService constructs a notifications Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Notify records a notification for a portal user. Both language variants
// are stored so the client can render whichever locale is active.
func (s *Service) Notify(ctx context.Context, userID, titleAr, titleEn, bodyAr, bodyEn, severity string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("notifications: %w: userId is required", ErrInvalidInput)
	}
	if titleAr == "" && titleEn == "" {
		return fmt.Errorf("notifications: %w: a title is required", ErrInvalidInput)
	}
	if severity == "" {
		severity = SeverityInfo
	}
	n := Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		TitleAr:   titleAr,
		TitleEn:   titleEn,
		BodyAr:    bodyAr,
		BodyEn:    bodyEn,
		Severity:  severity,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return fmt.Errorf("notifications: create: %w", err)
	}
	return nil
}

// ListForUser returns a user's notifications newest-first.
func (s *Service) ListForUser(ctx context.Context, userID string, limit, offset int) ([]Notification, int, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// UnreadCount returns the number of unread notifications for a user.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.Repo.CountUnread(ctx, userID)
}

// MarkRead acknowledges a notification owned by the given user.
func (s *Service) MarkRead(ctx context.Context, id, userID string) (Notification, error) {
	return s.Repo.MarkRead(ctx, id, userID)
}

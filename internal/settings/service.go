package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service manages system settings such as licensing fees.
type Service struct {
	Repo Repo
}

// NewService constructs a settings Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Set stores a value under (category, key), creating or replacing it.
func (s *Service) Set(ctx context.Context, category, key, value string) (Setting, error) {
	category = strings.ToUpper(strings.TrimSpace(category))
	key = strings.ToUpper(strings.TrimSpace(key))
	if category == "" || key == "" || value == "" {
		return Setting{}, fmt.Errorf("settings: %w: category, key and value are required", ErrInvalidInput)
	}
	return s.Repo.Upsert(ctx, Setting{
		ID:       uuid.NewString(),
		Category: category,
		Key:      key,
		Value:    value,
	})
}

// Get returns the setting for (category, key).
func (s *Service) Get(ctx context.Context, category, key string) (Setting, error) {
	return s.Repo.Get(ctx, strings.ToUpper(category), strings.ToUpper(key))
}

// List returns settings, scoped to a category when one is given.
func (s *Service) List(ctx context.Context, category string) ([]Setting, error) {
	if category != "" {
		return s.Repo.ListByCategory(ctx, strings.ToUpper(category))
	}
	return s.Repo.List(ctx)
}

// Delete removes the setting for (category, key).
func (s *Service) Delete(ctx context.Context, category, key string) error {
	return s.Repo.Delete(ctx, strings.ToUpper(category), strings.ToUpper(key))
}

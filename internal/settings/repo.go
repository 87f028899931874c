package settings

import "context"

// Repo persists system settings.
type Repo interface {
	Upsert(ctx context.Context, s Setting) (Setting, error)
	Get(ctx context.Context, category, key string) (Setting, error)
	ListByCategory(ctx context.Context, category string) ([]Setting, error)
	List(ctx context.Context) ([]Setting, error)
	Delete(ctx context.Context, category, key string) error
}

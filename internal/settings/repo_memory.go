package settings

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Setting
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Setting)}
}

func mapKey(category, key string) string {
	return category + "\x00" + key
}

// Upsert inserts or replaces the value for (category, key).
func (r *MemoryRepo) Upsert(ctx context.Context, s Setting) (Setting, error) {
	if err := ctx.Err(); err != nil {
		return Setting{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.data[mapKey(s.Category, s.Key)]; ok {
		s.ID = existing.ID
	}
	s.UpdatedAt = time.Now().UTC()
	r.data[mapKey(s.Category, s.Key)] = s
	return s, nil
}

// Get returns the setting for (category, key).
func (r *MemoryRepo) Get(ctx context.Context, category, key string) (Setting, error) {
	if err := ctx.Err(); err != nil {
		return Setting{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.data[mapKey(category, key)]
	if !ok {
		return Setting{}, ErrNotFound
	}
	return s, nil
}

// ListByCategory returns all settings in a category, ordered by key.
func (r *MemoryRepo) ListByCategory(ctx context.Context, category string) ([]Setting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Setting
	for _, s := range r.data {
		if s.Category == category {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// List returns all settings ordered by category then key.
func (r *MemoryRepo) List(ctx context.Context) ([]Setting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Setting, 0, len(r.data))
	for _, s := range r.data {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// Delete removes the setting for (category, key).
func (r *MemoryRepo) Delete(ctx context.Context, category, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[mapKey(category, key)]; !ok {
		return ErrNotFound
	}
	delete(r.data, mapKey(category, key))
	return nil
}

var _ Repo = (*MemoryRepo)(nil)

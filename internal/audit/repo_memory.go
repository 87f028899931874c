package audit

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data []Entry
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Append stores a new audit entry.
func (r *MemoryRepo) Append(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, entry)
	return nil
}

// List returns entries newest-first, optionally filtered by entity type, plus the total count.
func (r *MemoryRepo) List(ctx context.Context, entityType string, limit, offset int) ([]Entry, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []Entry
	for i := len(r.data) - 1; i >= 0; i-- {
		if entityType == "" || r.data[i].EntityType == entityType {
			filtered = append(filtered, r.data[i])
		}
	}

	total := len(filtered)
	if offset >= total {
		return []Entry{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return filtered[offset:end], total, nil
}

var _ Repo = (*MemoryRepo)(nil)

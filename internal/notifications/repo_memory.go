package notifications

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data []Notification
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create stores a notification.
func (r *MemoryRepo) Create(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, n)
	return nil
}

// GetByID returns a notification by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Notification, error) {
	if err := ctx.Err(); err != nil {
		return Notification{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, n := range r.data {
		if n.ID == id {
			return n, nil
		}
	}
	return Notification{}, ErrNotFound
}

// ListByUser returns a user's notifications newest-first, plus the total count.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Notification, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var mine []Notification
	for i := len(r.data) - 1; i >= 0; i-- {
		if r.data[i].UserID == userID {
			mine = append(mine, r.data[i])
		}
	}
	total := len(mine)
	if offset >= total {
		return []Notification{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return mine[offset:end], total, nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *MemoryRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, n := range r.data {
		if n.UserID == userID && n.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

// MarkRead stamps a notification as read for the given user.
func (r *MemoryRepo) MarkRead(ctx context.Context, id, userID string) (Notification, error) {
	if err := ctx.Err(); err != nil {
		return Notification{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data {
		if r.data[i].ID == id && r.data[i].UserID == userID {
			if r.data[i].ReadAt == nil {
				now := time.Now().UTC()
				r.data[i].ReadAt = &now
			}
			return r.data[i], nil
		}
	}
	return Notification{}, ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)

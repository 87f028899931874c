package facilities

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Facility
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Facility)}
}

// Create stores a new facility.
func (r *MemoryRepo) Create(ctx context.Context, facility Facility) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if existing.FacilityCode == facility.FacilityCode {
			return ErrDuplicate
		}
	}
	r.data[facility.ID] = facility
	return nil
}

// GetByID returns a facility by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, facilityID string) (Facility, error) {
	if err := ctx.Err(); err != nil {
		return Facility{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.data[facilityID]
	if !ok {
		return Facility{}, ErrNotFound
	}
	return f, nil
}

// GetByCode returns a facility by code.
func (r *MemoryRepo) GetByCode(ctx context.Context, facilityCode string) (Facility, error) {
	if err := ctx.Err(); err != nil {
		return Facility{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.data {
		if f.FacilityCode == facilityCode {
			return f, nil
		}
	}
	return Facility{}, ErrNotFound
}

// List returns facilities ordered by code, plus the total count.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Facility, int, error) {
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

	all := make([]Facility, 0, len(r.data))
	for _, f := range r.data {
		all = append(all, f)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FacilityCode < all[j].FacilityCode })

	total := len(all)
	if offset >= total {
		return []Facility{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// Update persists mutable facility fields.
func (r *MemoryRepo) Update(ctx context.Context, facility Facility) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[facility.ID]
	if !ok {
		return ErrNotFound
	}
	existing.NameAr = facility.NameAr
	existing.NameEn = facility.NameEn
	existing.FacilityType = facility.FacilityType
	existing.LicenseType = facility.LicenseType
	existing.IsActive = facility.IsActive
	r.data[facility.ID] = existing
	return nil
}

// Count returns the number of facilities.
func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data), nil
}

var _ Repo = (*MemoryRepo)(nil)

// UserMemoryRepo is an in-memory implementation of UserRepo.
type UserMemoryRepo struct {
	mu   sync.RWMutex
	data map[string]User
}

// NewUserMemoryRepo constructs a UserMemoryRepo.
func NewUserMemoryRepo() *UserMemoryRepo {
	return &UserMemoryRepo{data: make(map[string]User)}
}

// Create stores a new facility user.
func (r *UserMemoryRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if existing.PhoneNumber == user.PhoneNumber {
			return ErrDuplicate
		}
	}
	r.data[user.ID] = user
	return nil
}

// GetByID returns a facility user by ID.
func (r *UserMemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.data[userID]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

// GetByPhone returns a facility user by phone number.
func (r *UserMemoryRepo) GetByPhone(ctx context.Context, phoneNumber string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.data {
		if u.PhoneNumber == phoneNumber {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

// ListByFacility returns users belonging to a facility.
func (r *UserMemoryRepo) ListByFacility(ctx context.Context, facilityID string) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []User
	for _, u := range r.data {
		if u.FacilityID == facilityID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Count returns the number of facility users.
func (r *UserMemoryRepo) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data), nil
}

var _ UserRepo = (*UserMemoryRepo)(nil)

package admins

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	data   map[string]Admin
	roleBy map[string][]string // adminID -> roleIDs
	roles  *MemoryRoleRepo
}

// NewMemoryRepo constructs a MemoryRepo sharing the given role repo.
func NewMemoryRepo(roles *MemoryRoleRepo) *MemoryRepo {
	return &MemoryRepo{
		data:   make(map[string]Admin),
		roleBy: make(map[string][]string),
		roles:  roles,
	}
}

// Create stores a new admin.
func (r *MemoryRepo) Create(ctx context.Context, admin Admin) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if existing.Username == admin.Username {
			return ErrDuplicate
		}
	}
	admin.Roles = nil
	r.data[admin.ID] = admin
	return nil
}

// GetByID returns an admin with roles hydrated.
func (r *MemoryRepo) GetByID(ctx context.Context, adminID string) (Admin, error) {
	if err := ctx.Err(); err != nil {
		return Admin{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.data[adminID]
	if !ok {
		return Admin{}, ErrNotFound
	}
	admin.Roles = r.rolesForLocked(adminID)
	return admin, nil
}

// GetByUsername returns an admin with roles hydrated.
func (r *MemoryRepo) GetByUsername(ctx context.Context, username string) (Admin, error) {
	if err := ctx.Err(); err != nil {
		return Admin{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, admin := range r.data {
		if admin.Username == username {
			admin.Roles = r.rolesForLocked(id)
			return admin, nil
		}
	}
	return Admin{}, ErrNotFound
}

// List returns every admin ordered by username.
func (r *MemoryRepo) List(ctx context.Context) ([]Admin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Admin, 0, len(r.data))
	for id, admin := range r.data {
		admin.Roles = r.rolesForLocked(id)
		out = append(out, admin)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// Update persists mutable admin fields.
func (r *MemoryRepo) Update(ctx context.Context, admin Admin) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[admin.ID]
	if !ok {
		return ErrNotFound
	}
	existing.FullName = admin.FullName
	existing.PasswordHash = admin.PasswordHash
	existing.Enabled = admin.Enabled
	r.data[admin.ID] = existing
	return nil
}

// SetRoles replaces the admin's role set.
func (r *MemoryRepo) SetRoles(ctx context.Context, adminID string, roleIDs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[adminID]; !ok {
		return ErrNotFound
	}
	r.roleBy[adminID] = append([]string(nil), roleIDs...)
	return nil
}

func (r *MemoryRepo) rolesForLocked(adminID string) []Role {
	ids := r.roleBy[adminID]
	if len(ids) == 0 || r.roles == nil {
		return nil
	}
	out := make([]Role, 0, len(ids))
	for _, id := range ids {
		if role, ok := r.roles.byID(id); ok {
			out = append(out, role)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

var _ Repo = (*MemoryRepo)(nil)

// MemoryRoleRepo is an in-memory implementation of RoleRepo.
type MemoryRoleRepo struct {
	mu   sync.RWMutex
	data map[string]Role
}

// NewMemoryRoleRepo constructs a MemoryRoleRepo.
func NewMemoryRoleRepo() *MemoryRoleRepo {
	return &MemoryRoleRepo{data: make(map[string]Role)}
}

// Create stores a new role.
func (r *MemoryRoleRepo) Create(ctx context.Context, role Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[role.ID] = role
	return nil
}

// GetByCode returns a role by its code.
func (r *MemoryRoleRepo) GetByCode(ctx context.Context, code string) (Role, error) {
	if err := ctx.Err(); err != nil {
		return Role{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, role := range r.data {
		if role.Code == code {
			return role, nil
		}
	}
	return Role{}, ErrRoleNotFound
}

// List returns all roles ordered by code.
func (r *MemoryRoleRepo) List(ctx context.Context) ([]Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Role, 0, len(r.data))
	for _, role := range r.data {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *MemoryRoleRepo) byID(id string) (Role, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.data[id]
	return role, ok
}

var _ RoleRepo = (*MemoryRoleRepo)(nil)

package admins

import "context"

// Repo defines persistence operations for admins. Reads return admins with
// their roles hydrated; there is no lazy traversal.
type Repo interface {
	Create(ctx context.Context, admin Admin) error
	GetByID(ctx context.Context, adminID string) (Admin, error)
	GetByUsername(ctx context.Context, username string) (Admin, error)
	List(ctx context.Context) ([]Admin, error)
	Update(ctx context.Context, admin Admin) error
	SetRoles(ctx context.Context, adminID string, roleIDs []string) error
}

// RoleRepo defines persistence operations for roles.
type RoleRepo interface {
	Create(ctx context.Context, role Role) error
	GetByCode(ctx context.Context, code string) (Role, error)
	List(ctx context.Context) ([]Role, error)
}

package admins

import (
	"context"
	"database/sql"
	"errors"

	"healthoffice-backend/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) q(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.DB)
}

// Create inserts a new admin.
func (r *PGRepo) Create(ctx context.Context, admin Admin) error {
	const query = `
INSERT INTO admins (id, username, password_hash, full_name, enabled, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())`
	_, err := r.q(ctx).ExecContext(ctx, query,
		admin.ID,
		admin.Username,
		admin.PasswordHash,
		admin.FullName,
		admin.Enabled,
	)
	return err
}

// GetByID returns an admin with roles hydrated.
func (r *PGRepo) GetByID(ctx context.Context, adminID string) (Admin, error) {
	const query = `
SELECT id, username, password_hash, full_name, enabled, created_at, updated_at
FROM admins
WHERE id = $1
LIMIT 1`
	return r.getOne(ctx, query, adminID)
}

// GetByUsername returns an admin with roles hydrated.
func (r *PGRepo) GetByUsername(ctx context.Context, username string) (Admin, error) {
	const query = `
SELECT id, username, password_hash, full_name, enabled, created_at, updated_at
FROM admins
WHERE username = $1
LIMIT 1`
	return r.getOne(ctx, query, username)
}

func (r *PGRepo) getOne(ctx context.Context, query string, arg any) (Admin, error) {
	var a Admin
	err := r.q(ctx).QueryRowContext(ctx, query, arg).Scan(
		&a.ID,
		&a.Username,
		&a.PasswordHash,
		&a.FullName,
		&a.Enabled,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Admin{}, ErrNotFound
		}
		return Admin{}, err
	}
	roles, err := r.rolesFor(ctx, a.ID)
	if err != nil {
		return Admin{}, err
	}
	a.Roles = roles
	return a, nil
}

// List returns every admin with roles hydrated.
func (r *PGRepo) List(ctx context.Context) ([]Admin, error) {
	const query = `
SELECT id, username, password_hash, full_name, enabled, created_at, updated_at
FROM admins
ORDER BY username`
	rows, err := r.q(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Admin
	for rows.Next() {
		var a Admin
		if err := rows.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.FullName, &a.Enabled, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const roleQuery = `
SELECT ar.admin_id, r.id, r.code, r.name_ar, r.name_en
FROM admin_roles ar
JOIN roles r ON r.id = ar.role_id
ORDER BY r.code`
	roleRows, err := r.q(ctx).QueryContext(ctx, roleQuery)
	if err != nil {
		return nil, err
	}
	defer roleRows.Close()

	byAdmin := make(map[string][]Role)
	for roleRows.Next() {
		var adminID string
		var role Role
		if err := roleRows.Scan(&adminID, &role.ID, &role.Code, &role.NameAr, &role.NameEn); err != nil {
			return nil, err
		}
		byAdmin[adminID] = append(byAdmin[adminID], role)
	}
	if err := roleRows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].Roles = byAdmin[out[i].ID]
	}
	return out, nil
}

// Update persists mutable admin fields.
func (r *PGRepo) Update(ctx context.Context, admin Admin) error {
	const query = `
UPDATE admins
SET full_name = $1, password_hash = $2, enabled = $3, updated_at = now()
WHERE id = $4`
	res, err := r.q(ctx).ExecContext(ctx, query, admin.FullName, admin.PasswordHash, admin.Enabled, admin.ID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRoles replaces the admin's role set.
func (r *PGRepo) SetRoles(ctx context.Context, adminID string, roleIDs []string) error {
	if _, err := r.q(ctx).ExecContext(ctx, `DELETE FROM admin_roles WHERE admin_id = $1`, adminID); err != nil {
		return err
	}
	for _, roleID := range roleIDs {
		if _, err := r.q(ctx).ExecContext(ctx,
			`INSERT INTO admin_roles (admin_id, role_id) VALUES ($1, $2)`, adminID, roleID); err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepo) rolesFor(ctx context.Context, adminID string) ([]Role, error) {
	const query = `
SELECT r.id, r.code, r.name_ar, r.name_en
FROM admin_roles ar
JOIN roles r ON r.id = ar.role_id
WHERE ar.admin_id = $1
ORDER BY r.code`
	rows, err := r.q(ctx).QueryContext(ctx, query, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Code, &role.NameAr, &role.NameEn); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

// RolePGRepo implements RoleRepo using Postgres.
type RolePGRepo struct {
	DB *sql.DB
}

func (r *RolePGRepo) q(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.DB)
}

// Create inserts a new role.
func (r *RolePGRepo) Create(ctx context.Context, role Role) error {
	const query = `
INSERT INTO roles (id, code, name_ar, name_en, created_at)
VALUES ($1, $2, $3, $4, now())`
	_, err := r.q(ctx).ExecContext(ctx, query, role.ID, role.Code, role.NameAr, role.NameEn)
	return err
}

// GetByCode returns a role by its code.
func (r *RolePGRepo) GetByCode(ctx context.Context, code string) (Role, error) {
	const query = `SELECT id, code, name_ar, name_en FROM roles WHERE code = $1 LIMIT 1`
	var role Role
	err := r.q(ctx).QueryRowContext(ctx, query, code).Scan(&role.ID, &role.Code, &role.NameAr, &role.NameEn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		return Role{}, err
	}
	return role, nil
}

// List returns all roles ordered by code.
func (r *RolePGRepo) List(ctx context.Context) ([]Role, error) {
	const query = `SELECT id, code, name_ar, name_en FROM roles ORDER BY code`
	rows, err := r.q(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Code, &role.NameAr, &role.NameEn); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

var _ RoleRepo = (*RolePGRepo)(nil)

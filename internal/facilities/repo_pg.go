package facilities

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

// Create inserts a new facility.
func (r *PGRepo) Create(ctx context.Context, facility Facility) error {
	const query = `
INSERT INTO facilities (id, facility_code, name_ar, name_en, facility_type, license_type, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.q(ctx).ExecContext(ctx, query,
		facility.ID,
		facility.FacilityCode,
		facility.NameAr,
		facility.NameEn,
		facility.FacilityType,
		facility.LicenseType,
		facility.IsActive,
	)
	return err
}

const facilityColumns = `id, facility_code, name_ar, name_en, facility_type, license_type, is_active, created_at, updated_at`

// GetByID returns a facility by ID.
func (r *PGRepo) GetByID(ctx context.Context, facilityID string) (Facility, error) {
	return r.getOne(ctx, `SELECT `+facilityColumns+` FROM facilities WHERE id = $1 LIMIT 1`, facilityID)
}

// GetByCode returns a facility by its code.
func (r *PGRepo) GetByCode(ctx context.Context, facilityCode string) (Facility, error) {
	return r.getOne(ctx, `SELECT `+facilityColumns+` FROM facilities WHERE facility_code = $1 LIMIT 1`, facilityCode)
}

func (r *PGRepo) getOne(ctx context.Context, query string, arg any) (Facility, error) {
	var f Facility
	err := r.q(ctx).QueryRowContext(ctx, query, arg).Scan(
		&f.ID,
		&f.FacilityCode,
		&f.NameAr,
		&f.NameEn,
		&f.FacilityType,
		&f.LicenseType,
		&f.IsActive,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Facility{}, ErrNotFound
		}
		return Facility{}, err
	}
	return f, nil
}

// List returns facilities ordered by code, plus the total count.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Facility, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + facilityColumns + ` FROM facilities ORDER BY facility_code LIMIT $1 OFFSET $2`
	rows, err := r.q(ctx).QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Facility
	for rows.Next() {
		var f Facility
		if err := rows.Scan(&f.ID, &f.FacilityCode, &f.NameAr, &f.NameEn, &f.FacilityType, &f.LicenseType, &f.IsActive, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update persists mutable facility fields.
func (r *PGRepo) Update(ctx context.Context, facility Facility) error {
	const query = `
UPDATE facilities
SET name_ar = $1, name_en = $2, facility_type = $3, license_type = $4, is_active = $5, updated_at = now()
WHERE id = $6`
	res, err := r.q(ctx).ExecContext(ctx, query,
		facility.NameAr,
		facility.NameEn,
		facility.FacilityType,
		facility.LicenseType,
		facility.IsActive,
		facility.ID,
	)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of facilities.
func (r *PGRepo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.q(ctx).QueryRowContext(ctx, `SELECT count(*) FROM facilities`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

var _ Repo = (*PGRepo)(nil)

// UserPGRepo implements UserRepo using Postgres.
type UserPGRepo struct {
	DB *sql.DB
}

func (r *UserPGRepo) q(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.DB)
}

const userColumns = `id, facility_id, first_name, middle_name, last_name, phone_number, password_hash, user_type, is_active, created_at`

// Create inserts a new facility user.
func (r *UserPGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO facility_users (id, facility_id, first_name, middle_name, last_name, phone_number, password_hash, user_type, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`
	var middle sql.NullString
	if user.MiddleName != "" {
		middle = sql.NullString{String: user.MiddleName, Valid: true}
	}
	_, err := r.q(ctx).ExecContext(ctx, query,
		user.ID,
		user.FacilityID,
		user.FirstName,
		middle,
		user.LastName,
		user.PhoneNumber,
		user.PasswordHash,
		user.UserType,
		user.IsActive,
	)
	return err
}

// GetByID returns a facility user by ID.
func (r *UserPGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM facility_users WHERE id = $1 LIMIT 1`, userID)
}

// GetByPhone returns a facility user by phone number.
func (r *UserPGRepo) GetByPhone(ctx context.Context, phoneNumber string) (User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM facility_users WHERE phone_number = $1 LIMIT 1`, phoneNumber)
}

func (r *UserPGRepo) getOne(ctx context.Context, query string, arg any) (User, error) {
	var u User
	var middle sql.NullString
	err := r.q(ctx).QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.FacilityID,
		&u.FirstName,
		&middle,
		&u.LastName,
		&u.PhoneNumber,
		&u.PasswordHash,
		&u.UserType,
		&u.IsActive,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	if middle.Valid {
		u.MiddleName = middle.String
	}
	return u, nil
}

// ListByFacility returns users belonging to a facility.
func (r *UserPGRepo) ListByFacility(ctx context.Context, facilityID string) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM facility_users WHERE facility_id = $1 ORDER BY created_at`
	rows, err := r.q(ctx).QueryContext(ctx, query, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		var middle sql.NullString
		if err := rows.Scan(&u.ID, &u.FacilityID, &u.FirstName, &middle, &u.LastName, &u.PhoneNumber, &u.PasswordHash, &u.UserType, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, err
		}
		if middle.Valid {
			u.MiddleName = middle.String
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Count returns the number of facility users.
func (r *UserPGRepo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.q(ctx).QueryRowContext(ctx, `SELECT count(*) FROM facility_users`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

var _ UserRepo = (*UserPGRepo)(nil)

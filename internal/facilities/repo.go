package facilities

import "context"

// Repo defines persistence operations for facilities.
type Repo interface {
	Create(ctx context.Context, facility Facility) error
	GetByID(ctx context.Context, facilityID string) (Facility, error)
	GetByCode(ctx context.Context, facilityCode string) (Facility, error)
	List(ctx context.Context, limit, offset int) ([]Facility, int, error)
	Update(ctx context.Context, facility Facility) error
	Count(ctx context.Context) (int, error)
}

// UserRepo defines persistence operations for facility users.
type UserRepo interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByPhone(ctx context.Context, phoneNumber string) (User, error)
	ListByFacility(ctx context.Context, facilityID string) ([]User, error)
	Count(ctx context.Context) (int, error)
}

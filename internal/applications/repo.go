package applications

import "context"

// Repo defines persistence operations for applications.
type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, applicationID string) (Application, error)
	List(ctx context.Context, status string, limit, offset int) ([]Application, int, error)
	ListByFacility(ctx context.Context, facilityID string) ([]Application, error)
	UpdateStatus(ctx context.Context, applicationID, status string) error
}

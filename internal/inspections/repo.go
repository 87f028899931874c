package inspections

import "context"

// Repo persists inspections.
type Repo interface {
	Create(ctx context.Context, i Inspection) error
	GetByID(ctx context.Context, inspectionID string) (Inspection, error)
	Update(ctx context.Context, i Inspection) error
	ListByInspector(ctx context.Context, inspectorID string, limit, offset int) ([]Inspection, int, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]Inspection, int, error)
	ListByApplication(ctx context.Context, applicationID string) ([]Inspection, error)
}

// TemplateRepo persists checklist templates and their items.
type TemplateRepo interface {
	Create(ctx context.Context, t Template) error
	GetByID(ctx context.Context, templateID string) (Template, error)
	GetByFacilityType(ctx context.Context, facilityType string) (Template, error)
	List(ctx context.Context) ([]Template, error)
	Delete(ctx context.Context, templateID string) error
}

// ScoreRepo persists per-inspection score rows.
type ScoreRepo interface {
	CreateBatch(ctx context.Context, scores []Score) error
	GetByID(ctx context.Context, scoreID string) (Score, error)
	ListByInspection(ctx context.Context, inspectionID string) ([]Score, error)
	UpdateScore(ctx context.Context, scoreID string, value *float64) error
}

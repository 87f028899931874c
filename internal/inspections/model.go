package inspections

import "time"

// Inspection statuses. An inspection moves forward once, from scheduled to
// completed. There is no cancellation or no-show state.
const (
	StatusScheduled = "SCHEDULED"
	StatusCompleted = "COMPLETED"
)

// Inspection is one visit evaluating one application.
type Inspection struct {
	ID              string
	ApplicationID   string
	InspectorID     string
	Status          string
	ScheduledDate   time.Time
	ActualVisitDate *time.Time
	OverallScore    *float64
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Template is a facility-type-keyed checklist definition. At most one
// template exists per facility type.
type Template struct {
	ID           string
	Name         string
	FacilityType string
	Items        []TemplateItem
	CreatedAt    time.Time
}

// TemplateItem is one checklist line in a template. Reference data, copied
// onto inspections at schedule time.
type TemplateItem struct {
	ID            string
	TemplateID    string
	CriterionCode string
	Description   string
	MaxScore      float64
	ItemOrder     int
}

// Score is one checklist line snapshotted onto an inspection. The snapshot
// does not track later edits to the template. Score stays nil until the
// inspector records a value at completion.
type Score struct {
	ID            string
	InspectionID  string
	CriterionCode string
	Description   string
	MaxScore      float64
	Score         *float64
	CreatedAt     time.Time
}

// Record bundles an inspection with its score sheet.
type Record struct {
	Inspection Inspection
	Scores     []Score
}

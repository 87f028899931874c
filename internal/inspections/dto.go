package inspections

import (
	"time"

	"healthoffice-backend/internal/admins"
)

// ScoreResponse is the API shape of one score line.
type ScoreResponse struct {
	ID            string   `json:"id"`
	CriterionCode string   `json:"criterionCode"`
	Description   string   `json:"description"`
	MaxScore      float64  `json:"maxScore"`
	Score         *float64 `json:"score"`
}

// InspectionResponse is the API shape of an inspection with its score sheet.
type InspectionResponse struct {
	ID              string          `json:"id"`
	ApplicationID   string          `json:"applicationId"`
	InspectorID     string          `json:"inspectorId"`
	Status          string          `json:"status"`
	ScheduledDate   time.Time       `json:"scheduledDate"`
	ActualVisitDate *time.Time      `json:"actualVisitDate,omitempty"`
	OverallScore    *float64        `json:"overallScore,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Items           []ScoreResponse `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func toResponse(r Record) InspectionResponse {
	items := make([]ScoreResponse, 0, len(r.Scores))
	for _, s := range r.Scores {
		items = append(items, ScoreResponse{
			ID:            s.ID,
			CriterionCode: s.CriterionCode,
			Description:   s.Description,
			MaxScore:      s.MaxScore,
			Score:         s.Score,
		})
	}
	return InspectionResponse{
		ID:              r.Inspection.ID,
		ApplicationID:   r.Inspection.ApplicationID,
		InspectorID:     r.Inspection.InspectorID,
		Status:          r.Inspection.Status,
		ScheduledDate:   r.Inspection.ScheduledDate,
		ActualVisitDate: r.Inspection.ActualVisitDate,
		OverallScore:    r.Inspection.OverallScore,
		Notes:           r.Inspection.Notes,
		Items:           items,
		CreatedAt:       r.Inspection.CreatedAt,
		UpdatedAt:       r.Inspection.UpdatedAt,
	}
}

// InspectorResponse is the staff summary offered for inspection assignment.
type InspectorResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"fullName"`
	Roles    []string `json:"roles"`
}

func toInspectorResponse(a admins.Admin) InspectorResponse {
	return InspectorResponse{
		ID:       a.ID,
		Username: a.Username,
		FullName: a.FullName,
		Roles:    a.RoleCodes(),
	}
}

// TemplateItemResponse is the API shape of one template line.
type TemplateItemResponse struct {
	ID            string  `json:"id"`
	CriterionCode string  `json:"criterionCode"`
	Description   string  `json:"description"`
	MaxScore      float64 `json:"maxScore"`
	ItemOrder     int     `json:"itemOrder"`
}

// TemplateResponse is the API shape of a checklist template.
type TemplateResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	FacilityType string                 `json:"facilityType"`
	Items        []TemplateItemResponse `json:"items"`
	CreatedAt    time.Time              `json:"createdAt"`
}

func toTemplateResponse(t Template) TemplateResponse {
	items := make([]TemplateItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, TemplateItemResponse{
			ID:            it.ID,
			CriterionCode: it.CriterionCode,
			Description:   it.Description,
			MaxScore:      it.MaxScore,
			ItemOrder:     it.ItemOrder,
		})
	}
	return TemplateResponse{
		ID:           t.ID,
		Name:         t.Name,
		FacilityType: t.FacilityType,
		Items:        items,
		CreatedAt:    t.CreatedAt,
	}
}

package inspections

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TemplateItemInput is one checklist line of a new template.
type TemplateItemInput struct {
	CriterionCode string
	Description   string
	MaxScore      float64
}

// CreateTemplate registers the checklist for a facility type. Item order
// follows the submitted order.
func (s *Service) CreateTemplate(ctx context.Context, name, facilityType string, items []TemplateItemInput) (Template, error) {
	name = strings.TrimSpace(name)
	facilityType = strings.ToUpper(strings.TrimSpace(facilityType))
	if name == "" || facilityType == "" {
		return Template{}, fmt.Errorf("inspections: %w: name and facilityType are required", ErrInvalidInput)
	}
	if len(items) == 0 {
		return Template{}, fmt.Errorf("inspections: %w: at least one item is required", ErrInvalidInput)
	}

	if _, err := s.Templates.GetByFacilityType(ctx, facilityType); err == nil {
		return Template{}, ErrDuplicate
	} else if !errors.Is(err, ErrTemplateNotFound) {
		return Template{}, err
	}

	template := Template{
		ID:           uuid.NewString(),
		Name:         name,
		FacilityType: facilityType,
		CreatedAt:    time.Now().UTC(),
	}
	for order, item := range items {
		if item.CriterionCode == "" || item.MaxScore <= 0 {
			return Template{}, fmt.Errorf("inspections: %w: item %d needs a criterion code and a positive max score", ErrInvalidInput, order)
		}
		template.Items = append(template.Items, TemplateItem{
			ID:            uuid.NewString(),
			TemplateID:    template.ID,
			CriterionCode: item.CriterionCode,
			Description:   item.Description,
			MaxScore:      item.MaxScore,
			ItemOrder:     order,
		})
	}

	if err := s.Templates.Create(ctx, template); err != nil {
		return Template{}, err
	}
	return template, nil
}

// GetTemplate returns a template by ID.
func (s *Service) GetTemplate(ctx context.Context, templateID string) (Template, error) {
	return s.Templates.GetByID(ctx, templateID)
}

// ListTemplates returns all templates.
func (s *Service) ListTemplates(ctx context.Context) ([]Template, error) {
	return s.Templates.List(ctx)
}

// DeleteTemplate removes a template. Existing inspections keep their
// snapshotted score rows.
func (s *Service) DeleteTemplate(ctx context.Context, templateID string) error {
	return s.Templates.Delete(ctx, templateID)
}

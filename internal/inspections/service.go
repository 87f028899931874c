package inspections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"healthoffice-backend/internal/admins"
	"healthoffice-backend/internal/applications"
	"healthoffice-backend/internal/audit"
	"healthoffice-backend/internal/notifications"
	"healthoffice-backend/internal/shared/metrics"
	"healthoffice-backend/internal/shared/storage/db"
)

// Application statuses that allow scheduling an inspection.
var schedulableStatuses = map[string]bool{
	applications.StatusInspectionScheduled: true,
	applications.StatusUnderReview:         true,
	applications.StatusBlueprintReview:     true,
}

// Service orchestrates the inspection workflow: scheduling, template-driven
// score-sheet materialization, completion, and the ensure-seeded read repair.
type Service struct {
	DB           *sql.DB
	Repo         Repo
	Templates    TemplateRepo
	Scores       ScoreRepo
	Applications applications.Repo
	Admins       admins.Repo
	Audit        *audit.Service
	Notify       *notifications.Service
}

// NewService constructs an inspections Service. sqlDB may be nil when the
// repositories are in-memory.
func NewService(sqlDB *sql.DB, repo Repo, templates TemplateRepo, scores ScoreRepo,
	appRepo applications.Repo, adminRepo admins.Repo,
	auditSvc *audit.Service, notifySvc *notifications.Service) *Service {
	return &Service{
		DB:           sqlDB,
		Repo:         repo,
		Templates:    templates,
		Scores:       scores,
		Applications: appRepo,
		Admins:       adminRepo,
		Audit:        auditSvc,
		Notify:       notifySvc,
	}
}

// Schedule creates a SCHEDULED inspection for an application, snapshots the
// facility type's checklist onto it, moves the application to
// INSPECTION_SCHEDULED and notifies the submitting user. An application with
// no matching template schedules with zero score rows.
func (s *Service) Schedule(ctx context.Context, applicationID, inspectorID string, scheduledDate time.Time) (Record, error) {
	started := time.Now()

	app, err := s.Applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, applications.ErrNotFound) {
			return Record{}, fmt.Errorf("inspections: application %s: %w", applicationID, ErrNotFound)
		}
		return Record{}, err
	}
	if !schedulableStatuses[app.Status] {
		return Record{}, fmt.Errorf("inspections: application status %s: %w", app.Status, ErrInvalidState)
	}
	if _, err := s.Admins.GetByID(ctx, inspectorID); err != nil {
		if errors.Is(err, admins.ErrNotFound) {
			return Record{}, fmt.Errorf("inspections: inspector %s: %w", inspectorID, ErrNotFound)
		}
		return Record{}, err
	}

	inspection := Inspection{
		ID:            uuid.NewString(),
		ApplicationID: app.ID,
		InspectorID:   inspectorID,
		Status:        StatusScheduled,
		ScheduledDate: scheduledDate,
		CreatedAt:     time.Now().UTC(),
	}

	err = db.RunInTx(ctx, s.DB, func(ctx context.Context) error {
		if err := s.Repo.Create(ctx, inspection); err != nil {
			return err
		}
		if _, err := s.seedScores(ctx, inspection.ID, app.FacilityType); err != nil {
			return err
		}
		if err := s.Applications.UpdateStatus(ctx, app.ID, applications.StatusInspectionScheduled); err != nil {
			return err
		}
		if err := s.Audit.Log(ctx, inspectorID, "", "SCHEDULE_INSPECTION", "INSPECTION", inspection.ID,
			"Inspection scheduled for application: "+app.ApplicationNumber); err != nil {
			return err
		}
		visitDay := scheduledDate.Format("2006-01-02")
		return s.Notify.Notify(ctx, app.SubmittedByUserID,
			"تم تحديد موعد التفتيش", "Inspection Scheduled",
			"الموعد: "+visitDay, "Date: "+visitDay,
			notifications.SeverityInfo)
	})
	if err != nil {
		return Record{}, err
	}

	metrics.IncInspectionScheduled()
	metrics.ObserveScheduleDurationMs(float64(time.Since(started).Milliseconds()))
	return s.record(ctx, inspection)
}

// ScoreLine carries one submitted score keyed by its score-row ID.
type ScoreLine struct {
	ScoreID string
	Score   *float64
}

// CompleteInput carries the inspector's completion submission.
type CompleteInput struct {
	OverallScore *float64
	Notes        string
	Lines        []ScoreLine
}

// Complete records the visit outcome and moves the application to
// INSPECTION_COMPLETED. Submitted lines without an ID, or whose ID does not
// match a stored score row, are skipped.
func (s *Service) Complete(ctx context.Context, inspectionID string, in CompleteInput) (Record, error) {
	inspection, err := s.Repo.GetByID(ctx, inspectionID)
	if err != nil {
		return Record{}, err
	}

	now := time.Now().UTC()
	inspection.ActualVisitDate = &now
	inspection.Status = StatusCompleted
	inspection.OverallScore = in.OverallScore
	inspection.Notes = in.Notes

	err = db.RunInTx(ctx, s.DB, func(ctx context.Context) error {
		if err := s.Repo.Update(ctx, inspection); err != nil {
			return err
		}
		for _, line := range in.Lines {
			if line.ScoreID == "" {
				continue
			}
			if err := s.Scores.UpdateScore(ctx, line.ScoreID, line.Score); err != nil {
				if errors.Is(err, ErrNotFound) {
					continue
				}
				return err
			}
		}
		if err := s.Applications.UpdateStatus(ctx, inspection.ApplicationID, applications.StatusInspectionCompleted); err != nil {
			return err
		}
		note := "Inspection completed"
		if in.OverallScore != nil {
			note = fmt.Sprintf("Inspection completed, score: %.2f", *in.OverallScore)
		}
		return s.Audit.Log(ctx, inspection.InspectorID, "", "COMPLETE_INSPECTION", "INSPECTION", inspection.ID, note)
	})
	if err != nil {
		return Record{}, err
	}

	metrics.IncInspectionCompleted()
	return s.record(ctx, inspection)
}

// GetByID returns an inspection with its score sheet. If the sheet is empty
// and the application's facility type now has a template, the sheet is seeded
// as a side effect of the read. A second read returns the same rows without
// duplicating them.
func (s *Service) GetByID(ctx context.Context, inspectionID string) (Record, error) {
	inspection, err := s.Repo.GetByID(ctx, inspectionID)
	if err != nil {
		return Record{}, err
	}

	scores, err := s.Scores.ListByInspection(ctx, inspectionID)
	if err != nil {
		return Record{}, err
	}
	if len(scores) == 0 {
		app, err := s.Applications.GetByID(ctx, inspection.ApplicationID)
		if err != nil {
			return Record{}, err
		}
		var seeded int
		err = db.RunInTx(ctx, s.DB, func(ctx context.Context) error {
			n, err := s.seedScores(ctx, inspection.ID, app.FacilityType)
			seeded = n
			return err
		})
		if err != nil {
			return Record{}, err
		}
		if seeded > 0 {
			metrics.IncScoreSeedRepair()
		}
		scores, err = s.Scores.ListByInspection(ctx, inspectionID)
		if err != nil {
			return Record{}, err
		}
	}
	return Record{Inspection: inspection, Scores: scores}, nil
}

// ListByInspector returns an inspector's inspections with their score sheets.
func (s *Service) ListByInspector(ctx context.Context, inspectorID string, limit, offset int) ([]Record, int, error) {
	all, total, err := s.Repo.ListByInspector(ctx, inspectorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	records, err := s.records(ctx, all)
	return records, total, err
}

// ListByStatus returns inspections in the given status with their score sheets.
func (s *Service) ListByStatus(ctx context.Context, status string, limit, offset int) ([]Record, int, error) {
	all, total, err := s.Repo.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	records, err := s.records(ctx, all)
	return records, total, err
}

// ActiveForApplication returns the first SCHEDULED inspection for an
// application. A completed-only history is a miss.
func (s *Service) ActiveForApplication(ctx context.Context, applicationID string) (Record, error) {
	all, err := s.Repo.ListByApplication(ctx, applicationID)
	if err != nil {
		return Record{}, err
	}
	for _, inspection := range all {
		if inspection.Status == StatusScheduled {
			return s.record(ctx, inspection)
		}
	}
	return Record{}, fmt.Errorf("inspections: no active inspection for application %s: %w", applicationID, ErrNotFound)
}

// Inspectors returns every admin. The list is deliberately unfiltered:
// assignment is not restricted to holders of the INSPECTOR role.
func (s *Service) Inspectors(ctx context.Context) ([]admins.Admin, error) {
	return s.Admins.List(ctx)
}

// seedScores snapshots the facility type's template items onto an inspection.
// A missing template is not an error; the inspection keeps zero rows.
func (s *Service) seedScores(ctx context.Context, inspectionID, facilityType string) (int, error) {
	template, err := s.Templates.GetByFacilityType(ctx, facilityType)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return 0, nil
		}
		return 0, err
	}

	scores := make([]Score, 0, len(template.Items))
	now := time.Now().UTC()
	for _, item := range template.Items {
		scores = append(scores, Score{
			ID:            uuid.NewString(),
			InspectionID:  inspectionID,
			CriterionCode: item.CriterionCode,
			Description:   item.Description,
			MaxScore:      item.MaxScore,
			CreatedAt:     now,
		})
	}
	if len(scores) == 0 {
		return 0, nil
	}
	if err := s.Scores.CreateBatch(ctx, scores); err != nil {
		return 0, err
	}
	metrics.AddScoreRowsSeeded(len(scores))
	return len(scores), nil
}

func (s *Service) record(ctx context.Context, inspection Inspection) (Record, error) {
	scores, err := s.Scores.ListByInspection(ctx, inspection.ID)
	if err != nil {
		return Record{}, err
	}
	return Record{Inspection: inspection, Scores: scores}, nil
}

func (s *Service) records(ctx context.Context, all []Inspection) ([]Record, error) {
	out := make([]Record, 0, len(all))
	for _, inspection := range all {
		record, err := s.record(ctx, inspection)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

package applications

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"healthoffice-backend/internal/audit"
	"healthoffice-backend/internal/facilities"
	"healthoffice-backend/internal/notifications"
	"healthoffice-backend/internal/shared/storage/db"
)

// Service contains business logic for license applications.
type Service struct {
	DB         *sql.DB
	Repo       Repo
	Facilities facilities.Repo
	Audit      *audit.Service
	Notify     *notifications.Service
}

// NewService constructs an applications Service. sqlDB may be nil when the
// repositories are in-memory.
func NewService(sqlDB *sql.DB, repo Repo, facilityRepo facilities.Repo, auditSvc *audit.Service, notifySvc *notifications.Service) *Service {
	return &Service{DB: sqlDB, Repo: repo, Facilities: facilityRepo, Audit: auditSvc, Notify: notifySvc}
}

// Submit registers a new license application for the user's facility.
func (s *Service) Submit(ctx context.Context, facilityID, submittedByUserID string) (Application, error) {
	if strings.TrimSpace(facilityID) == "" || strings.TrimSpace(submittedByUserID) == "" {
		return Application{}, ErrInvalidInput
	}

	facility, err := s.Facilities.GetByID(ctx, facilityID)
	if err != nil {
		return Application{}, err
	}

	app := Application{
		ID:                uuid.NewString(),
		ApplicationNumber: newApplicationNumber(),
		FacilityID:        facility.ID,
		FacilityType:      facility.FacilityType,
		Status:            StatusSubmitted,
		SubmittedByUserID: submittedByUserID,
		CreatedAt:         time.Now().UTC(),
	}

	err = db.RunInTx(ctx, s.DB, func(ctx context.Context) error {
		if err := s.Repo.Create(ctx, app); err != nil {
			return err
		}
		return s.Audit.LogUser(ctx, submittedByUserID, "SUBMIT_APPLICATION", "APPLICATION", app.ID,
			"Application submitted: "+app.ApplicationNumber)
	})
	if err != nil {
		return Application{}, err
	}
	return app, nil
}

// GetByID returns an application by ID.
func (s *Service) GetByID(ctx context.Context, applicationID string) (Application, error) {
	return s.Repo.GetByID(ctx, applicationID)
}

// List returns a page of applications, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]Application, int, error) {
	if status != "" && !ValidStatus(status) {
		return nil, 0, ErrBadStatus
	}
	return s.Repo.List(ctx, status, limit, offset)
}

// ListByFacility returns a facility's applications.
func (s *Service) ListByFacility(ctx context.Context, facilityID string) ([]Application, error) {
	return s.Repo.ListByFacility(ctx, facilityID)
}

// SetStatus moves an application to the given status, recording the decision
// and notifying the submitting user.
func (s *Service) SetStatus(ctx context.Context, applicationID, status, actorAdminID, note string) (Application, error) {
	if !ValidStatus(status) {
		return Application{}, ErrBadStatus
	}

	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return Application{}, err
	}

	if note == "" {
		note = "Status changed to " + status
	}

	err = db.RunInTx(ctx, s.DB, func(ctx context.Context) error {
		if err := s.Repo.UpdateStatus(ctx, app.ID, status); err != nil {
			return err
		}
		if err := s.Audit.Log(ctx, actorAdminID, "", "SET_APPLICATION_STATUS", "APPLICATION", app.ID, note); err != nil {
			return err
		}
		return s.Notify.Notify(ctx, app.SubmittedByUserID,
			"تم تحديث حالة الطلب", "Application Status Updated",
			"الحالة الجديدة: "+status, "New status: "+status,
			notifications.SeverityInfo)
	})
	if err != nil {
		return Application{}, err
	}
	app.Status = status
	return app, nil
}

func newApplicationNumber() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("APP-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("APP-%s-%s", time.Now().UTC().Format("2006"), strings.ToUpper(hex.EncodeToString(b[:])))
}

package applications

import (
	"context"
	"errors"
	"strings"
	"testing"

	"healthoffice-backend/internal/audit"
	"healthoffice-backend/internal/facilities"
	"healthoffice-backend/internal/notifications"
)

func newTestService(t *testing.T) (*Service, *facilities.MemoryRepo, *notifications.MemoryRepo, *audit.MemoryRepo) {
	t.Helper()
	facRepo := facilities.NewMemoryRepo()
	noteRepo := notifications.NewMemoryRepo()
	auditRepo := audit.NewMemoryRepo()
	svc := NewService(nil, NewMemoryRepo(), facRepo,
		audit.NewService(auditRepo), notifications.NewService(noteRepo))
	return svc, facRepo, noteRepo, auditRepo
}

func TestSubmitCreatesApplication(t *testing.T) {
	svc, facRepo, _, auditRepo := newTestService(t)
	err := facRepo.Create(context.Background(), facilities.Facility{
		ID:           "fac-1",
		FacilityCode: "FAC-001",
		NameAr:       "مستشفى",
		FacilityType: facilities.TypeHospital,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("create facility: %v", err)
	}

	app, err := svc.Submit(context.Background(), "fac-1", "user-1")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if app.Status != StatusSubmitted {
		t.Fatalf("expected status %s, got %s", StatusSubmitted, app.Status)
	}
	if app.FacilityType != facilities.TypeHospital {
		t.Fatalf("expected facility type copied, got %s", app.FacilityType)
	}
	if !strings.HasPrefix(app.ApplicationNumber, "APP-") {
		t.Fatalf("unexpected application number %q", app.ApplicationNumber)
	}

	entries, _, err := auditRepo.List(context.Background(), "APPLICATION", 10, 0)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != "SUBMIT_APPLICATION" {
		t.Fatalf("expected one SUBMIT_APPLICATION entry, got %+v", entries)
	}
}

func TestSubmitUnknownFacility(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	if _, err := svc.Submit(context.Background(), "missing", "user-1"); !errors.Is(err, facilities.ErrNotFound) {
		t.Fatalf("expected facilities.ErrNotFound, got %v", err)
	}
}

func TestSetStatusValidatesAndNotifies(t *testing.T) {
	svc, facRepo, noteRepo, _ := newTestService(t)
	err := facRepo.Create(context.Background(), facilities.Facility{
		ID:           "fac-1",
		FacilityCode: "FAC-001",
		NameAr:       "مستشفى",
		FacilityType: facilities.TypeHospital,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("create facility: %v", err)
	}
	app, err := svc.Submit(context.Background(), "fac-1", "user-1")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := svc.SetStatus(context.Background(), app.ID, "NOT_A_STATUS", "admin-1", ""); !errors.Is(err, ErrBadStatus) {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}

	updated, err := svc.SetStatus(context.Background(), app.ID, StatusUnderReview, "admin-1", "starting review")
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != StatusUnderReview {
		t.Fatalf("expected status %s, got %s", StatusUnderReview, updated.Status)
	}

	sent, _, err := noteRepo.ListByUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sent))
	}
	if !strings.Contains(sent[0].BodyEn, StatusUnderReview) {
		t.Fatalf("expected body to carry new status, got %q", sent[0].BodyEn)
	}
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	if _, _, err := svc.List(context.Background(), "BOGUS", 10, 0); !errors.Is(err, ErrBadStatus) {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}
}

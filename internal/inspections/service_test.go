package inspections

import (
	"context"
	"errors"
	"testing"
	"time"

	"healthoffice-backend/internal/admins"
	"healthoffice-backend/internal/applications"
	"healthoffice-backend/internal/audit"
	"healthoffice-backend/internal/notifications"
)

type testEnv struct {
	svc           *Service
	apps          *applications.MemoryRepo
	adminRepo     *admins.MemoryRepo
	templates     *TemplateMemoryRepo
	scores        *ScoreMemoryRepo
	notifications *notifications.MemoryRepo
	auditLog      *audit.MemoryRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	roleRepo := admins.NewMemoryRoleRepo()
	env := &testEnv{
		apps:          applications.NewMemoryRepo(),
		adminRepo:     admins.NewMemoryRepo(roleRepo),
		templates:     NewTemplateMemoryRepo(),
		scores:        NewScoreMemoryRepo(),
		notifications: notifications.NewMemoryRepo(),
		auditLog:      audit.NewMemoryRepo(),
	}
	env.svc = NewService(nil, NewMemoryRepo(), env.templates, env.scores,
		env.apps, env.adminRepo,
		audit.NewService(env.auditLog), notifications.NewService(env.notifications))
	return env
}

func (env *testEnv) addApplication(t *testing.T, id, facilityType, status string) applications.Application {
	t.Helper()
	app := applications.Application{
		ID:                id,
		ApplicationNumber: "APP-2026-" + id,
		FacilityID:        "facility-" + id,
		FacilityType:      facilityType,
		Status:            status,
		SubmittedByUserID: "user-" + id,
		CreatedAt:         time.Now().UTC(),
	}
	if err := env.apps.Create(context.Background(), app); err != nil {
		t.Fatalf("create application: %v", err)
	}
	return app
}

func (env *testEnv) addInspector(t *testing.T, id string) {
	t.Helper()
	err := env.adminRepo.Create(context.Background(), admins.Admin{
		ID:       id,
		Username: "inspector-" + id,
		FullName: "Inspector " + id,
		Enabled:  true,
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
}

func (env *testEnv) addHospitalTemplate(t *testing.T) Template {
	t.Helper()
	template := Template{
		ID:           "template-hospital",
		Name:         "Hospital Checklist",
		FacilityType: "HOSPITAL",
		Items: []TemplateItem{
			{ID: "item-1", TemplateID: "template-hospital", CriterionCode: "H-001", Description: "Central sterilization equipment", MaxScore: 10, ItemOrder: 1},
			{ID: "item-2", TemplateID: "template-hospital", CriterionCode: "H-002", Description: "On-call medical staffing", MaxScore: 20, ItemOrder: 2},
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := env.templates.Create(context.Background(), template); err != nil {
		t.Fatalf("create template: %v", err)
	}
	return template
}

func TestScheduleRejectsIneligibleApplicationStatus(t *testing.T) {
	env := newTestEnv(t)
	env.addApplication(t, "a1", "HOSPITAL", applications.StatusApproved)
	env.addInspector(t, "i1")

	_, err := env.svc.Schedule(context.Background(), "a1", "i1", time.Now().Add(48*time.Hour))
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestScheduleMissingApplicationAndInspector(t *testing.T) {
	env := newTestEnv(t)
	env.addApplication(t, "a1", "HOSPITAL", applications.StatusUnderReview)
	env.addInspector(t, "i1")

	if _, err := env.svc.Schedule(context.Background(), "missing", "i1", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing application, got %v", err)
	}
	if _, err := env.svc.Schedule(context.Background(), "a1", "missing", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing inspector, got %v", err)
	}
}

func TestScheduleMaterializesTemplateScores(t *testing.T) {
	env := newTestEnv(t)
	app := env.addApplication(t, "a1", "HOSPITAL", applications.StatusUnderReview)
	env.addInspector(t, "i1")
	env.addHospitalTemplate(t)

	visit := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
	record, err := env.svc.Schedule(context.Background(), app.ID, "i1", visit)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if record.Inspection.Status != StatusScheduled {
		t.Fatalf("expected status %s, got %s", StatusScheduled, record.Inspection.Status)
	}
	if len(record.Scores) != 2 {
		t.Fatalf("expected 2 score rows, got %d", len(record.Scores))
	}
	wantMax := map[string]float64{"H-001": 10, "H-002": 20}
	for _, s := range record.Scores {
		if s.Score != nil {
			t.Fatalf("expected score for %s to be unset", s.CriterionCode)
		}
		if want, ok := wantMax[s.CriterionCode]; !ok || s.MaxScore != want {
			t.Fatalf("unexpected score row %s max %v", s.CriterionCode, s.MaxScore)
		}
	}

	updated, err := env.apps.GetByID(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("GetByID application: %v", err)
	}
	if updated.Status != applications.StatusInspectionScheduled {
		t.Fatalf("expected application status %s, got %s", applications.StatusInspectionScheduled, updated.Status)
	}

	sent, _, err := env.notifications.ListByUser(context.Background(), app.SubmittedByUserID, 10, 0)
	if err != nil {
		t.Fatalf("ListByUser notifications: %v", err)
	}
	if len(sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sent))
	}
	if sent[0].TitleEn != "Inspection Scheduled" {
		t.Fatalf("unexpected notification title %q", sent[0].TitleEn)
	}

	entries, _, err := env.auditLog.List(context.Background(), "INSPECTION", 10, 0)
	if err != nil {
		t.Fatalf("List audit entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != "SCHEDULE_INSPECTION" {
		t.Fatalf("expected one SCHEDULE_INSPECTION audit entry, got %+v", entries)
	}
}

func TestScheduleWithoutTemplateSucceeds(t *testing.T) {
	env := newTestEnv(t)
	app := env.addApplication(t, "a1", "CLINIC", applications.StatusBlueprintReview)
	env.addInspector(t, "i1")

	record, err := env.svc.Schedule(context.Background(), app.ID, "i1", time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(record.Scores) != 0 {
		t.Fatalf("expected 0 score rows, got %d", len(record.Scores))
	}
}

func TestCompletePartialScoreUpdate(t *testing.T) {
	env := newTestEnv(t)
	app := env.addApplication(t, "a1", "HOSPITAL", applications.StatusUnderReview)
	env.addInspector(t, "i1")
	env.addHospitalTemplate(t)

	record, err := env.svc.Schedule(context.Background(), app.ID, "i1", time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	value := 8.5
	overall := 8.5
	completed, err := env.svc.Complete(context.Background(), record.Inspection.ID, CompleteInput{
		OverallScore: &overall,
		Notes:        "minor findings",
		Lines: []ScoreLine{
			{ScoreID: record.Scores[0].ID, Score: &value},
			{ScoreID: "does-not-exist", Score: &value},
			{ScoreID: ""},
		},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if completed.Inspection.Status != StatusCompleted {
		t.Fatalf("expected status %s, got %s", StatusCompleted, completed.Inspection.Status)
	}
	if completed.Inspection.ActualVisitDate == nil {
		t.Fatalf("expected actual visit date to be set")
	}
	if completed.Inspection.OverallScore == nil || *completed.Inspection.OverallScore != overall {
		t.Fatalf("expected overall score %v, got %v", overall, completed.Inspection.OverallScore)
	}

	var updated, untouched int
	for _, s := range completed.Scores {
		if s.ID == record.Scores[0].ID {
			if s.Score == nil || *s.Score != value {
				t.Fatalf("expected score %v on updated row, got %v", value, s.Score)
			}
			updated++
			continue
		}
		if s.Score != nil {
			t.Fatalf("expected untouched row %s to stay unset", s.CriterionCode)
		}
		untouched++
	}
	if updated != 1 || untouched != 1 {
		t.Fatalf("expected 1 updated and 1 untouched row, got %d/%d", updated, untouched)
	}

	appAfter, err := env.apps.GetByID(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("GetByID application: %v", err)
	}
	if appAfter.Status != applications.StatusInspectionCompleted {
		t.Fatalf("expected application status %s, got %s", applications.StatusInspectionCompleted, appAfter.Status)
	}
}

func TestGetByIDSeedsMissingScoresOnce(t *testing.T) {
	env := newTestEnv(t)
	app := env.addApplication(t, "a1", "HOSPITAL", applications.StatusUnderReview)
	env.addInspector(t, "i1")

	// Scheduled before any template existed for the facility type.
	record, err := env.svc.Schedule(context.Background(), app.ID, "i1", time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(record.Scores) != 0 {
		t.Fatalf("expected 0 score rows before template, got %d", len(record.Scores))
	}

	env.addHospitalTemplate(t)

	first, err := env.svc.GetByID(context.Background(), record.Inspection.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(first.Scores) != 2 {
		t.Fatalf("expected 2 seeded rows, got %d", len(first.Scores))
	}

	second, err := env.svc.GetByID(context.Background(), record.Inspection.ID)
	if err != nil {
		t.Fatalf("GetByID second read: %v", err)
	}
	if len(second.Scores) != 2 {
		t.Fatalf("expected repair to be idempotent, got %d rows", len(second.Scores))
	}
	for i := range first.Scores {
		if first.Scores[i].ID != second.Scores[i].ID {
			t.Fatalf("expected same rows across reads, got %s vs %s", first.Scores[i].ID, second.Scores[i].ID)
		}
	}
}

func TestActiveForApplicationAfterCompletion(t *testing.T) {
	env := newTestEnv(t)
	app := env.addApplication(t, "a1", "HOSPITAL", applications.StatusUnderReview)
	env.addInspector(t, "i1")
	env.addHospitalTemplate(t)

	record, err := env.svc.Schedule(context.Background(), app.ID, "i1", time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	active, err := env.svc.ActiveForApplication(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("ActiveForApplication: %v", err)
	}
	if active.Inspection.ID != record.Inspection.ID {
		t.Fatalf("expected active inspection %s, got %s", record.Inspection.ID, active.Inspection.ID)
	}

	if _, err := env.svc.Complete(context.Background(), record.Inspection.ID, CompleteInput{}); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if _, err := env.svc.ActiveForApplication(context.Background(), app.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after completion, got %v", err)
	}
}

func TestInspectorsReturnsAllStaff(t *testing.T) {
	env := newTestEnv(t)
	env.addInspector(t, "i1")
	env.addInspector(t, "i2")

	all, err := env.svc.Inspectors(context.Background())
	if err != nil {
		t.Fatalf("Inspectors: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 staff entries, got %d", len(all))
	}
}

func TestListByStatusPaginates(t *testing.T) {
	env := newTestEnv(t)
	env.addInspector(t, "i1")
	for _, id := range []string{"a1", "a2", "a3"} {
		app := env.addApplication(t, id, "CLINIC", applications.StatusUnderReview)
		if _, err := env.svc.Schedule(context.Background(), app.ID, "i1", time.Now().Add(24*time.Hour)); err != nil {
			t.Fatalf("Schedule %s: %v", id, err)
		}
	}

	page, total, err := env.svc.ListByStatus(context.Background(), StatusScheduled, 2, 0)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(page) != 2 {
		t.Fatalf("expected page of 2, got %d", len(page))
	}
}

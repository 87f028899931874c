package inspections

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateInsertsInspection(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	inspection := Inspection{
		ID:            "insp-1",
		ApplicationID: "app-1",
		InspectorID:   "admin-1",
		Status:        StatusScheduled,
		ScheduledDate: time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO inspections").
		WithArgs(
			inspection.ID,
			inspection.ApplicationID,
			inspection.InspectorID,
			inspection.Status,
			inspection.ScheduledDate,
			nil, // actual_visit_date
			nil, // overall_score
			nil, // notes
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), inspection); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDMissReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM inspections WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "application_id", "inspector_id", "status", "scheduled_date",
			"actual_visit_date", "overall_score", "notes", "created_at", "updated_at",
		}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestScorePGRepoUpdateScoreMissReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &ScorePGRepo{DB: db}
	value := 7.5
	mock.ExpectExec("UPDATE inspection_scores SET score").
		WithArgs(value, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateScore(context.Background(), "missing", &value); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestTemplatePGRepoGetByFacilityTypeMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &TemplatePGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM inspection_templates WHERE facility_type").
		WithArgs("PHARMACY").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "facility_type", "created_at"}))

	if _, err := repo.GetByFacilityType(context.Background(), "PHARMACY"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

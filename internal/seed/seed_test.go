package seed

import (
	"context"
	"testing"

	"healthoffice-backend/internal/admins"
	"healthoffice-backend/internal/applications"
	"healthoffice-backend/internal/audit"
	"healthoffice-backend/internal/facilities"
	"healthoffice-backend/internal/inspections"
	"healthoffice-backend/internal/notifications"
	"healthoffice-backend/internal/settings"
)

func newSeeder() *Seeder {
	roleRepo := admins.NewMemoryRoleRepo()
	adminRepo := admins.NewMemoryRepo(roleRepo)
	facRepo := facilities.NewMemoryRepo()
	userRepo := facilities.NewUserMemoryRepo()
	settingRepo := settings.NewMemoryRepo()

	adminSvc := admins.NewService(adminRepo, roleRepo)
	facSvc := facilities.NewService(facRepo, userRepo)
	settingSvc := settings.NewService(settingRepo)
	inspectionSvc := inspections.NewService(nil, inspections.NewMemoryRepo(),
		inspections.NewTemplateMemoryRepo(), inspections.NewScoreMemoryRepo(),
		applications.NewMemoryRepo(), adminRepo,
		audit.NewService(audit.NewMemoryRepo()),
		notifications.NewService(notifications.NewMemoryRepo()))

	return &Seeder{
		Admins:      adminSvc,
		AdminRepo:   adminRepo,
		Roles:       roleRepo,
		Facilities:  facSvc,
		FacRepo:     facRepo,
		Settings:    settingSvc,
		SettingRepo: settingRepo,
		Inspections: inspectionSvc,
	}
}

func TestRunInstallsBaselineData(t *testing.T) {
	s := newSeeder()
	ctx := context.Background()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	roles, err := s.Roles.List(ctx)
	if err != nil {
		t.Fatalf("list roles: %v", err)
	}
	if len(roles) != 6 {
		t.Fatalf("expected 6 roles, got %d", len(roles))
	}

	admin, err := s.AdminRepo.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("default admin missing: %v", err)
	}
	if !admin.HasRole(admins.RoleAdmin) {
		t.Fatalf("expected default admin to hold ADMIN role")
	}

	count, err := s.FacRepo.Count(ctx)
	if err != nil {
		t.Fatalf("count facilities: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 facilities, got %d", count)
	}

	fees, err := s.SettingRepo.ListByCategory(ctx, settings.CategoryFees)
	if err != nil {
		t.Fatalf("list fees: %v", err)
	}
	if len(fees) != 3 {
		t.Fatalf("expected 3 fee settings, got %d", len(fees))
	}

	template, err := s.Inspections.Templates.GetByFacilityType(ctx, facilities.TypeHospital)
	if err != nil {
		t.Fatalf("hospital template missing: %v", err)
	}
	if len(template.Items) != 3 {
		t.Fatalf("expected 3 template items, got %d", len(template.Items))
	}
}

func TestRunIsIdempotent(t *testing.T) {
	s := newSeeder()
	ctx := context.Background()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := s.Run(ctx); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	roles, err := s.Roles.List(ctx)
	if err != nil {
		t.Fatalf("list roles: %v", err)
	}
	if len(roles) != 6 {
		t.Fatalf("expected 6 roles after reseed, got %d", len(roles))
	}

	count, err := s.FacRepo.Count(ctx)
	if err != nil {
		t.Fatalf("count facilities: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 facilities after reseed, got %d", count)
	}
}

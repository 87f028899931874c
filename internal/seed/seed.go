// Package seed installs the baseline records a fresh deployment needs:
// roles, the default admin account, demo facilities, licensing fees and the
// hospital inspection checklist. Every step is idempotent so the seeder can
// run on each boot.
package seed

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"healthoffice-backend/internal/admins"
	"healthoffice-backend/internal/facilities"
	"healthoffice-backend/internal/inspections"
	"healthoffice-backend/internal/settings"
	"healthoffice-backend/internal/shared/telemetry"
)

// Seeder wires the collaborators needed to install baseline data.
type Seeder struct {
	Admins      *admins.Service
	AdminRepo   admins.Repo
	Roles       admins.RoleRepo
	Facilities  *facilities.Service
	FacRepo     facilities.Repo
	Settings    *settings.Service
	SettingRepo settings.Repo
	Inspections *inspections.Service
}

type roleSeed struct {
	code   string
	nameAr string
	nameEn string
}

var defaultRoles = []roleSeed{
	{admins.RoleAdmin, "مدير النظام", "System Administrator"},
	{admins.RoleInspector, "مفتش", "Inspector"},
	{admins.RoleReviewer, "مراجع", "Reviewer"},
	{admins.RoleFinance, "مالية", "Finance"},
	{admins.RoleMedia, "إعلام", "Media"},
	{admins.RoleViolation, "شؤون المخالفات", "Violations Department"},
}

// Run installs all baseline data, skipping anything already present.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.roles(ctx); err != nil {
		return err
	}
	if err := s.defaultAdmin(ctx); err != nil {
		return err
	}
	if err := s.demoFacilities(ctx); err != nil {
		return err
	}
	if err := s.fees(ctx); err != nil {
		return err
	}
	return s.hospitalTemplate(ctx)
}

func (s *Seeder) roles(ctx context.Context) error {
	for _, r := range defaultRoles {
		if _, err := s.Roles.GetByCode(ctx, r.code); err == nil {
			continue
		} else if !errors.Is(err, admins.ErrRoleNotFound) {
			return err
		}
		err := s.Roles.Create(ctx, admins.Role{
			ID:     uuid.NewString(),
			Code:   r.code,
			NameAr: r.nameAr,
			NameEn: r.nameEn,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) defaultAdmin(ctx context.Context) error {
	if _, err := s.AdminRepo.GetByUsername(ctx, "admin"); err == nil {
		return nil
	} else if !errors.Is(err, admins.ErrNotFound) {
		return err
	}
	if _, err := s.Admins.Create(ctx, "admin", "password", "System Administrator", []string{admins.RoleAdmin}); err != nil {
		return err
	}
	telemetry.Info("default admin created", map[string]any{"username": "admin"})
	return nil
}

func (s *Seeder) demoFacilities(ctx context.Context) error {
	count, err := s.FacRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hospital, err := s.Facilities.Create(ctx, facilities.Facility{
		FacilityCode: "FAC-001",
		NameAr:       "مستشفى العاصمة النموذجي",
		NameEn:       "Capital Model Hospital",
		FacilityType: facilities.TypeHospital,
		LicenseType:  "NEW",
	})
	if err != nil {
		return err
	}
	_, err = s.Facilities.CreateUser(ctx, facilities.User{
		FacilityID:  hospital.ID,
		FirstName:   "أحمد",
		MiddleName:  "محمد",
		LastName:    "العزي",
		PhoneNumber: "777777777",
		UserType:    "OWNER",
	}, "password")
	if err != nil {
		return err
	}

	_, err = s.Facilities.Create(ctx, facilities.Facility{
		FacilityCode: "FAC-002",
		NameAr:       "مجمع الثورة الطبي",
		NameEn:       "Al-Thawra Medical Complex",
		FacilityType: facilities.TypeClinic,
		LicenseType:  "RENEW",
	})
	if err != nil {
		return err
	}
	_, err = s.Facilities.Create(ctx, facilities.Facility{
		FacilityCode: "FAC-003",
		NameAr:       "صيدلية الشفاء",
		NameEn:       "Al-Shifa Pharmacy",
		FacilityType: facilities.TypePharmacy,
		LicenseType:  "NEW",
	})
	if err != nil {
		return err
	}
	telemetry.Info("demo facilities created", map[string]any{"count": 3})
	return nil
}

func (s *Seeder) fees(ctx context.Context) error {
	existing, err := s.SettingRepo.ListByCategory(ctx, settings.CategoryFees)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	fees := map[string]string{
		"LICENSE_FEE_HOSPITAL": "150000.00",
		"LICENSE_FEE_CLINIC":   "50000.00",
		"LICENSE_FEE_PHARMACY": "75000.00",
	}
	for key, value := range fees {
		if _, err := s.Settings.Set(ctx, settings.CategoryFees, key, value); err != nil {
			return err
		}
	}
	telemetry.Info("default fee settings created", map[string]any{"count": len(fees)})
	return nil
}

func (s *Seeder) hospitalTemplate(ctx context.Context) error {
	_, err := s.Inspections.Templates.GetByFacilityType(ctx, facilities.TypeHospital)
	if err == nil {
		return nil
	}
	if !errors.Is(err, inspections.ErrTemplateNotFound) {
		return err
	}

	_, err = s.Inspections.CreateTemplate(ctx, "نموذج تفتيش المستشفيات", facilities.TypeHospital, []inspections.TemplateItemInput{
		{CriterionCode: "H-001", Description: "توفر أجهزة التعقيم المركزية", MaxScore: 10.00},
		{CriterionCode: "H-002", Description: "كفاءة الطاقم الطبي المناوب", MaxScore: 20.00},
		{CriterionCode: "H-003", Description: "الالتزام بمعايير السلامة المهنية", MaxScore: 15.00},
	})
	if err != nil {
		return err
	}
	telemetry.Info("hospital inspection template created", map[string]any{"facilityType": facilities.TypeHospital})
	return nil
}

package admins

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service contains business logic for staff accounts.
type Service struct {
	Repo     Repo
	RoleRepo RoleRepo
}

// NewService constructs a Service.
func NewService(repo Repo, roleRepo RoleRepo) *Service {
	return &Service{Repo: repo, RoleRepo: roleRepo}
}

// Create registers a new admin with the given role codes.
func (s *Service) Create(ctx context.Context, username, password, fullName string, roleCodes []string) (Admin, error) {
	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)
	if username == "" || password == "" || fullName == "" {
		return Admin{}, ErrInvalidInput
	}
	if _, err := s.Repo.GetByUsername(ctx, username); err == nil {
		return Admin{}, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return Admin{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Admin{}, err
	}

	admin := Admin{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		Enabled:      true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, admin); err != nil {
		return Admin{}, err
	}
	if len(roleCodes) > 0 {
		if err := s.AssignRoles(ctx, admin.ID, roleCodes); err != nil {
			return Admin{}, err
		}
	}
	return s.Repo.GetByID(ctx, admin.ID)
}

// GetByID returns an admin by ID.
func (s *Service) GetByID(ctx context.Context, adminID string) (Admin, error) {
	if strings.TrimSpace(adminID) == "" {
		return Admin{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, adminID)
}

// List returns all admins.
func (s *Service) List(ctx context.Context) ([]Admin, error) {
	return s.Repo.List(ctx)
}

// Update changes an admin's full name, enabled flag, and optionally password.
func (s *Service) Update(ctx context.Context, adminID, fullName, newPassword string, enabled bool) (Admin, error) {
	admin, err := s.Repo.GetByID(ctx, adminID)
	if err != nil {
		return Admin{}, err
	}
	if fullName = strings.TrimSpace(fullName); fullName != "" {
		admin.FullName = fullName
	}
	if newPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return Admin{}, err
		}
		admin.PasswordHash = string(hash)
	}
	admin.Enabled = enabled
	if err := s.Repo.Update(ctx, admin); err != nil {
		return Admin{}, err
	}
	return s.Repo.GetByID(ctx, adminID)
}

// AssignRoles replaces the admin's roles with the given codes.
func (s *Service) AssignRoles(ctx context.Context, adminID string, roleCodes []string) error {
	if _, err := s.Repo.GetByID(ctx, adminID); err != nil {
		return err
	}
	roleIDs := make([]string, 0, len(roleCodes))
	for _, code := range roleCodes {
		role, err := s.RoleRepo.GetByCode(ctx, strings.TrimSpace(code))
		if err != nil {
			return err
		}
		roleIDs = append(roleIDs, role.ID)
	}
	return s.Repo.SetRoles(ctx, adminID, roleIDs)
}

// Roles lists all roles.
func (s *Service) Roles(ctx context.Context) ([]Role, error) {
	return s.RoleRepo.List(ctx)
}

// Authenticate verifies credentials and returns the matching enabled admin.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Admin, error) {
	admin, err := s.Repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return Admin{}, err
	}
	if !admin.Enabled {
		return Admin{}, ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return Admin{}, ErrNotFound
	}
	return admin, nil
}

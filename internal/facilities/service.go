package facilities

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service contains business logic for facilities and their portal users.
type Service struct {
	Repo     Repo
	UserRepo UserRepo
}

// NewService constructs a Service.
func NewService(repo Repo, userRepo UserRepo) *Service {
	return &Service{Repo: repo, UserRepo: userRepo}
}

// Create registers a new facility.
func (s *Service) Create(ctx context.Context, facility Facility) (Facility, error) {
	facility.FacilityCode = strings.TrimSpace(facility.FacilityCode)
	if facility.FacilityCode == "" || facility.NameAr == "" || facility.FacilityType == "" {
		return Facility{}, ErrInvalidInput
	}
	if _, err := s.Repo.GetByCode(ctx, facility.FacilityCode); err == nil {
		return Facility{}, ErrDuplicate
	}
	facility.ID = uuid.NewString()
	facility.IsActive = true
	facility.CreatedAt = time.Now().UTC()
	if err := s.Repo.Create(ctx, facility); err != nil {
		return Facility{}, err
	}
	return s.Repo.GetByID(ctx, facility.ID)
}

// GetByID returns a facility by ID.
func (s *Service) GetByID(ctx context.Context, facilityID string) (Facility, error) {
	if strings.TrimSpace(facilityID) == "" {
		return Facility{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, facilityID)
}

// List returns a page of facilities.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Facility, int, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Update changes facility details.
func (s *Service) Update(ctx context.Context, facility Facility) (Facility, error) {
	if err := s.Repo.Update(ctx, facility); err != nil {
		return Facility{}, err
	}
	return s.Repo.GetByID(ctx, facility.ID)
}

// Deactivate marks a facility inactive.
func (s *Service) Deactivate(ctx context.Context, facilityID string) (Facility, error) {
	facility, err := s.Repo.GetByID(ctx, facilityID)
	if err != nil {
		return Facility{}, err
	}
	facility.IsActive = false
	if err := s.Repo.Update(ctx, facility); err != nil {
		return Facility{}, err
	}
	return facility, nil
}

// CreateUser registers a portal user for a facility.
func (s *Service) CreateUser(ctx context.Context, user User, password string) (User, error) {
	user.PhoneNumber = strings.TrimSpace(user.PhoneNumber)
	if user.FacilityID == "" || user.FirstName == "" || user.LastName == "" || user.PhoneNumber == "" || password == "" {
		return User{}, ErrInvalidInput
	}
	if _, err := s.Repo.GetByID(ctx, user.FacilityID); err != nil {
		return User{}, err
	}
	if _, err := s.UserRepo.GetByPhone(ctx, user.PhoneNumber); err == nil {
		return User{}, ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user.ID = uuid.NewString()
	user.PasswordHash = string(hash)
	user.IsActive = true
	user.CreatedAt = time.Now().UTC()
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// GetUser returns a facility user by ID.
func (s *Service) GetUser(ctx context.Context, userID string) (User, error) {
	return s.UserRepo.GetByID(ctx, userID)
}

// UsersOf returns the portal users of a facility.
func (s *Service) UsersOf(ctx context.Context, facilityID string) ([]User, error) {
	return s.UserRepo.ListByFacility(ctx, facilityID)
}

// AuthenticateUser verifies portal credentials and returns the matching active user.
func (s *Service) AuthenticateUser(ctx context.Context, phoneNumber, password string) (User, error) {
	user, err := s.UserRepo.GetByPhone(ctx, strings.TrimSpace(phoneNumber))
	if err != nil {
		return User{}, err
	}
	if !user.IsActive {
		return User{}, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

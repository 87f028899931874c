package admins

import "time"

// Role codes seeded at install time. Admins may hold any combination.
const (
	RoleAdmin     = "ADMIN"
	RoleInspector = "INSPECTOR"
	RoleReviewer  = "REVIEWER"
	RoleFinance   = "FINANCE"
	RoleMedia     = "MEDIA"
	RoleViolation = "VIOLATION"
)

// Admin is a staff user of the licensing office.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	Enabled      bool
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role is a named permission group with bilingual display names.
type Role struct {
	ID     string
	Code   string
	NameAr string
	NameEn string
}

// RoleCodes returns the admin's role codes.
func (a Admin) RoleCodes() []string {
	codes := make([]string, 0, len(a.Roles))
	for _, r := range a.Roles {
		codes = append(codes, r.Code)
	}
	return codes
}

// HasRole reports whether the admin holds the given role code.
func (a Admin) HasRole(code string) bool {
	for _, r := range a.Roles {
		if r.Code == code {
			return true
		}
	}
	return false
}

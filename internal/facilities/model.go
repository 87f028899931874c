package facilities

import "time"

// Facility types used to select the applicable inspection template.
const (
	TypeHospital = "HOSPITAL"
	TypeClinic   = "CLINIC"
	TypePharmacy = "PHARMACY"
)

// Facility is a registered health facility.
type Facility struct {
	ID           string
	FacilityCode string
	NameAr       string
	NameEn       string
	FacilityType string
	LicenseType  string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// User is a facility-portal account tied to one facility.
type User struct {
	ID           string
	FacilityID   string
	FirstName    string
	MiddleName   string
	LastName     string
	PhoneNumber  string
	PasswordHash string
	UserType     string
	IsActive     bool
	CreatedAt    time.Time
}

// FullName joins the user's name parts.
func (u User) FullName() string {
	name := u.FirstName
	if u.MiddleName != "" {
		name += " " + u.MiddleName
	}
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}

package facilities

import "time"

// FacilityResponse is the outward-facing representation of a facility.
type FacilityResponse struct {
	ID           string    `json:"id"`
	FacilityCode string    `json:"facilityCode"`
	NameAr       string    `json:"nameAr"`
	NameEn       string    `json:"nameEn"`
	FacilityType string    `json:"facilityType"`
	LicenseType  string    `json:"licenseType"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserResponse is the outward-facing representation of a facility user.
type UserResponse struct {
	ID          string    `json:"id"`
	FacilityID  string    `json:"facilityId"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber"`
	UserType    string    `json:"userType"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toResponse(f Facility) FacilityResponse {
	return FacilityResponse{
		ID:           f.ID,
		FacilityCode: f.FacilityCode,
		NameAr:       f.NameAr,
		NameEn:       f.NameEn,
		FacilityType: f.FacilityType,
		LicenseType:  f.LicenseType,
		IsActive:     f.IsActive,
		CreatedAt:    f.CreatedAt,
	}
}

func toUserResponse(u User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		FacilityID:  u.FacilityID,
		FullName:    u.FullName(),
		PhoneNumber: u.PhoneNumber,
		UserType:    u.UserType,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

package applications

import "time"

// Application lifecycle statuses.
const (
	StatusSubmitted           = "SUBMITTED"
	StatusUnderReview         = "UNDER_REVIEW"
	StatusBlueprintReview     = "BLUEPRINT_REVIEW"
	StatusInspectionScheduled = "INSPECTION_SCHEDULED"
	StatusInspectionCompleted = "INSPECTION_COMPLETED"
	StatusPaymentPending      = "PAYMENT_PENDING"
	StatusApproved            = "APPROVED"
	StatusRejected            = "REJECTED"
)

// ValidStatus reports whether s is one of the enumerated statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusBlueprintReview,
		StatusInspectionScheduled, StatusInspectionCompleted,
		StatusPaymentPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Application is a facility's license request tracked through the status lifecycle.
type Application struct {
	ID                string
	ApplicationNumber string
	FacilityID        string
	FacilityType      string
	Status            string
	SubmittedByUserID string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

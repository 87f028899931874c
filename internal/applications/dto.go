package applications

import "time"

// ApplicationResponse is the API shape of one application.
type ApplicationResponse struct {
	ID                string    `json:"id"`
	ApplicationNumber string    `json:"applicationNumber"`
	FacilityID        string    `json:"facilityId"`
	FacilityType      string    `json:"facilityType"`
	Status            string    `json:"status"`
	SubmittedByUserID string    `json:"submittedByUserId"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toResponse(a Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                a.ID,
		ApplicationNumber: a.ApplicationNumber,
		FacilityID:        a.FacilityID,
		FacilityType:      a.FacilityType,
		Status:            a.Status,
		SubmittedByUserID: a.SubmittedByUserID,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

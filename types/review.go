package types

import "time"

type SubmitReviewReq struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

type ReviewResp struct {
	ID            uint64    `json:"id"`
	AppointmentID uint64    `json:"appointment_id"`
	BusinessID    uint64    `json:"business_id"`
	UserID        uint64    `json:"user_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

type SubmitReviewResp struct {
	Review       ReviewResp `json:"review"`
	PointsEarned int64      `json:"points_earned"`
}

// ReviewTokenResp describes the appointment a review link points at.
type ReviewTokenResp struct {
	AppointmentID   uint64    `json:"appointment_id"`
	BusinessID      uint64    `json:"business_id"`
	BusinessName    string    `json:"business_name"`
	PetName         string    `json:"pet_name"`
	ServiceName     string    `json:"service_name"`
	AppointmentDate time.Time `json:"appointment_date"`
	Reviewed        bool      `json:"reviewed"`
}

type ListReviewsResp struct {
	Reviews    []ReviewResp `json:"reviews"`
	Rating     RatingResp   `json:"rating"`
	NextCursor uint64       `json:"next_cursor"`
	HasMore    bool         `json:"has_more"`
}

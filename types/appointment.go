package types

import "time"

type BookReq struct {
	BusinessID        uint64    `json:"business_id" binding:"required"`
	PetID             uint64    `json:"pet_id" binding:"required"`
	ServiceIDs        []uint64  `json:"service_ids" binding:"required,min=1,dive,gt=0"`
	AppointmentDate   time.Time `json:"appointment_date" binding:"required"`
	IsRecurring       bool      `json:"is_recurring"`
	RecurringInterval *string   `json:"recurring_interval"`
	Notes             string    `json:"notes"`
}

type BookResp struct {
	BookingID    string            `json:"booking_id"`
	Appointments []AppointmentResp `json:"appointments"`
	PointsEarned int64             `json:"points_earned"`
}

type ListAppointmentsReq struct {
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	Cursor uint64 `form:"cursor"`
	Limit  int    `form:"limit,default=20"`
}

type AppointmentResp struct {
	ID                  uint64     `json:"id"`
	UserID              uint64     `json:"user_id"`
	BusinessID          uint64     `json:"business_id"`
	PetID               uint64     `json:"pet_id"`
	ServiceID           uint64     `json:"service_id"`
	BookingID           string     `json:"booking_id"`
	AppointmentDate     time.Time  `json:"appointment_date"`
	Status              string     `json:"status"`
	IsRecurring         bool       `json:"is_recurring"`
	RecurringInterval   *string    `json:"recurring_interval"`
	ParentAppointmentID *uint64    `json:"parent_appointment_id"`
	ReviewSent          bool       `json:"review_sent"`
	ReviewSubmitted     bool       `json:"review_submitted"`
	Notes               string     `json:"notes"`
	CancelledBy         string     `json:"cancelled_by,omitempty"`
	ConfirmedAt         *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	CancelledAt         *time.Time `json:"cancelled_at,omitempty"`
}

type ListAppointmentsResp struct {
	Appointments []AppointmentResp `json:"appointments"`
	NextCursor   uint64            `json:"next_cursor"`
	HasMore      bool              `json:"has_more"`
}

// TransitionResp is returned by confirm, complete and cancel.
type TransitionResp struct {
	Appointment  AppointmentResp  `json:"appointment"`
	Successor    *AppointmentResp `json:"successor,omitempty"`
	PointsEarned int64            `json:"points_earned"`
	Replayed     bool             `json:"replayed"`
}

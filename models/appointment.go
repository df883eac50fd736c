package models

import "time"

type Appointment struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"id"`
	UserID      uint64 `gorm:"column:user_id;not null;index" json:"user_id"`
	BusinessID  uint64 `gorm:"column:business_id;not null;index:idx_business_status" json:"business_id"`
	PetID       uint64 `gorm:"column:pet_id;not null" json:"pet_id"`
	ServiceID   uint64 `gorm:"column:service_id;not null" json:"service_id"`
	ClientEmail string `gorm:"column:client_email;size:191;not null;default:''" json:"client_email"`
	BookingID   string `gorm:"column:booking_id;size:32;not null;index" json:"booking_id"`

	AppointmentDate time.Time `gorm:"column:appointment_date;not null;index:idx_status_date" json:"appointment_date"`
	Status          string    `gorm:"column:status;size:16;not null;index:idx_status_date;index:idx_business_status" json:"status"`

	IsRecurring       bool    `gorm:"column:is_recurring;not null;default:false" json:"is_recurring"`
	RecurringInterval *string `gorm:"column:recurring_interval;size:16" json:"recurring_interval"`
	// ParentAppointmentID is a weak reference; the unique index allows one successor per parent.
	ParentAppointmentID *uint64 `gorm:"column:parent_appointment_id;uniqueIndex" json:"parent_appointment_id"`

	Reminder24hSent bool `gorm:"column:reminder_24h_sent;not null;default:false" json:"reminder_24h_sent"`
	Reminder1hSent  bool `gorm:"column:reminder_1h_sent;not null;default:false" json:"reminder_1h_sent"`
	ReviewSent      bool `gorm:"column:review_sent;not null;default:false" json:"review_sent"`
	ReviewSubmitted bool `gorm:"column:review_submitted;not null;default:false" json:"review_submitted"`

	Notes       string     `gorm:"column:notes;type:text" json:"notes"`
	CancelledBy string     `gorm:"column:cancelled_by;size:16;not null;default:''" json:"cancelled_by"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CancelledAt *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

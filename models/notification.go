package models

import "time"

type Notification struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"id"`
	UserID        uint64    `gorm:"column:user_id;not null;index:idx_user_read" json:"user_id"`
	Type          string    `gorm:"column:type;size:40;not null" json:"type"`
	Title         string    `gorm:"column:title;size:150;not null" json:"title"`
	Message       string    `gorm:"column:message;size:500;not null;default:''" json:"message"`
	Link          string    `gorm:"column:link;size:255;not null;default:''" json:"link"`
	AppointmentID *uint64   `gorm:"column:appointment_id" json:"appointment_id,omitempty"`
	IsRead        bool      `gorm:"column:is_read;not null;default:false;index:idx_user_read" json:"is_read"`
	DedupeKey     string    `gorm:"column:dedupe_key;size:191;not null;uniqueIndex" json:"-"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

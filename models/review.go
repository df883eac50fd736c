package models

import "time"

type Review struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"id"`
	AppointmentID uint64    `gorm:"column:appointment_id;not null;uniqueIndex" json:"appointment_id"`
	BusinessID    uint64    `gorm:"column:business_id;not null;index" json:"business_id"`
	UserID        uint64    `gorm:"column:user_id;not null;index" json:"user_id"`
	PetID         uint64    `gorm:"column:pet_id;not null" json:"pet_id"`
	Rating        int       `gorm:"column:rating;not null" json:"rating"`
	Comment       string    `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type Pet struct {
	ID        uint64         `gorm:"primaryKey;column:id" json:"id"`
	OwnerID   uint64         `gorm:"column:owner_id;not null;index" json:"owner_id"`
	Name      string         `gorm:"column:name;size:100;not null" json:"name"`
	Species   string         `gorm:"column:species;size:50;not null;default:''" json:"species"`
	Breed     string         `gorm:"column:breed;size:100;not null;default:''" json:"breed"`
	BirthDate *time.Time     `gorm:"column:birth_date;type:date" json:"birth_date,omitempty"`
	WeightKg  float64        `gorm:"column:weight_kg;not null;default:0" json:"weight_kg"`
	Notes     string         `gorm:"column:notes;type:text" json:"notes"`
	PhotoURL  string         `gorm:"column:photo_url;size:500;not null;default:''" json:"photo_url"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Pet) TableName() string {
	return "pets"
}

package models

import "time"

type Business struct {
	ID          uint64     `gorm:"primaryKey;column:id" json:"id"`
	OwnerID     uint64     `gorm:"column:owner_id;not null;index" json:"owner_id"`
	Name        string     `gorm:"column:name;size:150;not null;default:''" json:"name"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Phone       string     `gorm:"column:phone;size:32;not null;default:''" json:"phone"`
	Email       string     `gorm:"column:email;size:191;not null;default:''" json:"email"`
	Address     string     `gorm:"column:address;size:255;not null;default:''" json:"address"`
	City        string     `gorm:"column:city;size:100;not null;default:''" json:"city"`
	LogoURL     string     `gorm:"column:logo_url;size:500;not null;default:''" json:"logo_url"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Business) TableName() string {
	return "businesses"
}

// ProfileComplete is true once name, phone and address are all set.
func (b *Business) ProfileComplete() bool {
	return b.Name != "" && b.Phone != "" && b.Address != ""
}

type BusinessService struct {
	ID              uint64    `gorm:"primaryKey;column:id" json:"id"`
	BusinessID      uint64    `gorm:"column:business_id;not null;index" json:"business_id"`
	Name            string    `gorm:"column:name;size:150;not null" json:"name"`
	Description     string    `gorm:"column:description;type:text" json:"description"`
	DurationMinutes int       `gorm:"column:duration_minutes;not null;default:60" json:"duration_minutes"`
	PriceCents      int64     `gorm:"column:price_cents;not null;default:0" json:"price_cents"`
	Active          bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (BusinessService) TableName() string {
	return "business_services"
}

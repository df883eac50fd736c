package models

import "time"

const (
	RoleUser     = "user"
	RoleBusiness = "business"
	RoleAdmin    = "admin"
)

type Users struct {
	ID           uint64 `gorm:"primaryKey;column:id" json:"id"`
	Email        string `gorm:"column:email;size:191;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;size:100;not null" json:"-"`
	Role         string `gorm:"column:role;size:16;not null;default:user" json:"role"`
	DisplayName  string `gorm:"column:display_name;size:100;not null;default:''" json:"display_name"`
	Phone        string `gorm:"column:phone;size:32;not null;default:''" json:"phone"`
	AvatarURL    string `gorm:"column:avatar_url;size:500;not null;default:''" json:"avatar_url"`

	// loyalty account
	RewardPoints        int64  `gorm:"column:reward_points;not null;default:0" json:"reward_points"`
	TotalLifetimePoints int64  `gorm:"column:total_lifetime_points;not null;default:0" json:"total_lifetime_points"`
	RewardTier          string `gorm:"column:reward_tier;size:16;not null;default:bronze" json:"reward_tier"`
	LoyaltyStars        int    `gorm:"column:loyalty_stars;not null;default:0" json:"loyalty_stars"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Users) TableName() string {
	return "users"
}

// ProfileComplete reports whether both contact fields are filled.
func (u *Users) ProfileComplete() bool {
	return u.DisplayName != "" && u.Phone != ""
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// RewardAction is the immutable audit record of one grant.
type RewardAction struct {
	ID             uint64         `gorm:"primaryKey;column:id" json:"id"`
	UserID         uint64         `gorm:"column:user_id;not null;index" json:"user_id"`
	UserEmail      string         `gorm:"column:user_email;size:191;not null;default:''" json:"user_email"`
	ActionType     string         `gorm:"column:action_type;size:40;not null" json:"action_type"`
	Points         int64          `gorm:"column:points;not null" json:"points"`
	Stars          int            `gorm:"column:stars;not null;default:0" json:"stars"`
	Description    string         `gorm:"column:description;size:255;not null;default:''" json:"description"`
	Metadata       datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	IdempotencyKey string         `gorm:"column:idempotency_key;size:191;not null;uniqueIndex" json:"-"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RewardAction) TableName() string {
	return "reward_actions"
}

const (
	RedemptionActive  = "active"
	RedemptionUsed    = "used"
	RedemptionExpired = "expired"
)

// RewardRedemption is a spend against a platform reward or a business redeemable.
type RewardRedemption struct {
	ID               uint64  `gorm:"primaryKey;column:id" json:"id"`
	UserID           uint64  `gorm:"column:user_id;not null;index" json:"user_id"`
	UserEmail        string  `gorm:"column:user_email;size:191;not null;default:''" json:"user_email"`
	PlatformRewardID *uint64 `gorm:"column:platform_reward_id" json:"platform_reward_id,omitempty"`
	// BusinessRedeemableID is a weak reference, no foreign key.
	BusinessRedeemableID *uint64    `gorm:"column:business_redeemable_id" json:"business_redeemable_id,omitempty"`
	BusinessID           *uint64    `gorm:"column:business_id;index" json:"business_id,omitempty"`
	Title                string     `gorm:"column:title;size:150;not null" json:"title"`
	PointsSpent          int64      `gorm:"column:points_spent;not null" json:"points_spent"`
	Status               string     `gorm:"column:status;size:16;not null;default:active;index:idx_status_expires" json:"status"`
	IdempotencyKey       string     `gorm:"column:idempotency_key;size:191;not null;uniqueIndex" json:"-"`
	ExpiresAt            *time.Time `gorm:"column:expires_at;index:idx_status_expires" json:"expires_at,omitempty"`
	UsedAt               *time.Time `gorm:"column:used_at" json:"used_at,omitempty"`
	CreatedAt            time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (RewardRedemption) TableName() string {
	return "reward_redemptions"
}

// PlatformReward is an item of the platform-wide catalog.
type PlatformReward struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"id"`
	Title       string    `gorm:"column:title;size:150;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	PointsCost  int64     `gorm:"column:points_cost;not null" json:"points_cost"`
	MinTier     string    `gorm:"column:min_tier;size:16;not null;default:bronze" json:"min_tier"`
	ValidDays   int       `gorm:"column:valid_days;not null;default:0" json:"valid_days"`
	Active      bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (PlatformReward) TableName() string {
	return "platform_rewards"
}

type BusinessRedeemable struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"id"`
	BusinessID  uint64    `gorm:"column:business_id;not null;index" json:"business_id"`
	Title       string    `gorm:"column:title;size:150;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	PointsCost  int64     `gorm:"column:points_cost;not null" json:"points_cost"`
	ValidDays   int       `gorm:"column:valid_days;not null;default:0" json:"valid_days"`
	Active      bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (BusinessRedeemable) TableName() string {
	return "business_redeemables"
}

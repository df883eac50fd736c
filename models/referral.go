package models

import "time"

const (
	ReferralKindUser     = "user"
	ReferralKindBusiness = "business"

	ReferralPending    = "pending"
	ReferralRegistered = "registered"
	ReferralRewarded   = "rewarded"
)

type ReferralInvitation struct {
	ID           uint64     `gorm:"primaryKey;column:id" json:"id"`
	InviterID    uint64     `gorm:"column:inviter_id;not null;index" json:"inviter_id"`
	InviteeEmail string     `gorm:"column:invitee_email;size:191;not null;index" json:"invitee_email"`
	InviteeID    *uint64    `gorm:"column:invitee_id;index" json:"invitee_id,omitempty"`
	Kind         string     `gorm:"column:kind;size:16;not null" json:"kind"`
	Code         string     `gorm:"column:code;size:64;not null;uniqueIndex" json:"code"`
	Status       string     `gorm:"column:status;size:16;not null;default:pending" json:"status"`
	RewardedAt   *time.Time `gorm:"column:rewarded_at" json:"rewarded_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (ReferralInvitation) TableName() string {
	return "referral_invitations"
}

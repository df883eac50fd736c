package types

import "time"

type InviteReq struct {
	Email string `json:"email" binding:"required,email"`
	Kind  string `json:"kind" binding:"required,oneof=user business"`
}

type ReferralResp struct {
	ID           uint64     `json:"id"`
	InviteeEmail string     `json:"invitee_email"`
	Kind         string     `json:"kind"`
	Code         string     `json:"code"`
	Status       string     `json:"status"`
	RewardedAt   *time.Time `json:"rewarded_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

package types

import "time"

type CatalogItem struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PointsCost  int64  `json:"points_cost"`
	MinTier     string `json:"min_tier"`
	ValidDays   int    `json:"valid_days"`
	Eligible    bool   `json:"eligible"`
	Affordable  bool   `json:"affordable"`
}

type CatalogResp struct {
	Account PointsAccount `json:"account"`
	Rewards []CatalogItem `json:"rewards"`
}

type CreatePlatformRewardReq struct {
	Title       string `json:"title" binding:"required,max=150"`
	Description string `json:"description"`
	PointsCost  int64  `json:"points_cost" binding:"required,gt=0"`
	MinTier     string `json:"min_tier" binding:"omitempty,oneof=bronze silver gold platinum"`
	ValidDays   int    `json:"valid_days" binding:"gte=0"`
}

type RedemptionResp struct {
	ID                   uint64     `json:"id"`
	Title                string     `json:"title"`
	PointsSpent          int64      `json:"points_spent"`
	Status               string     `json:"status"`
	PlatformRewardID     *uint64    `json:"platform_reward_id,omitempty"`
	BusinessRedeemableID *uint64    `json:"business_redeemable_id,omitempty"`
	BusinessID           *uint64    `json:"business_id,omitempty"`
	ExpiresAt            *time.Time `json:"expires_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

type RedeemResp struct {
	Redemption RedemptionResp `json:"redemption"`
	Account    PointsAccount  `json:"account"`
	Duplicate  bool           `json:"duplicate"`
}

type ListRedemptionsResp struct {
	Redemptions []RedemptionResp `json:"redemptions"`
	NextCursor  uint64           `json:"next_cursor"`
	HasMore     bool             `json:"has_more"`
}

type CursorReq struct {
	Cursor uint64 `form:"cursor"`
	Limit  int    `form:"limit,default=20"`
}

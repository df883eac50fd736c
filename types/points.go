package types

import "time"

// PointRecord is one entry of the reward history.
type PointRecord struct {
	ID          uint64    `json:"id"`
	Action      string    `json:"action"`
	Points      int64     `json:"points"`
	Stars       int       `json:"stars"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListPointsRecord struct {
	Records    []PointRecord `json:"records"`
	NextCursor uint64        `json:"next_cursor"`
	HasMore    bool          `json:"has_more"`
}

// PointsAccount is the loyalty dashboard.
type PointsAccount struct {
	Balance       int64  `json:"balance"`
	Lifetime      int64  `json:"total_lifetime_points"`
	Tier          string `json:"tier"`
	Stars         int    `json:"loyalty_stars"`
	NextTier      string `json:"next_tier,omitempty"`
	PointsToNext  int64  `json:"points_to_next_tier"`
}

type ListPointRecordsReq struct {
	Action string `form:"action"`
	Cursor uint64 `form:"cursor"`
	Limit  int    `form:"limit,default=20"`
}

// ManualGrantReq is the admin adjustment.
type ManualGrantReq struct {
	UserID         uint64 `json:"user_id" binding:"required"`
	Points         int64  `json:"points" binding:"required,gt=0"`
	Reason         string `json:"reason" binding:"required,max=200"`
	IdempotencyKey string `json:"idempotency_key" binding:"required,max=100"`
}

type GrantResp struct {
	Account   PointsAccount `json:"account"`
	Duplicate bool          `json:"duplicate"`
}

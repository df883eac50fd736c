package types

import "time"

type UserResp struct {
	ID                  uint64    `json:"id"`
	Email               string    `json:"email"`
	Role                string    `json:"role"`
	DisplayName         string    `json:"display_name"`
	Phone               string    `json:"phone"`
	AvatarURL           string    `json:"avatar_url"`
	RewardPoints        int64     `json:"reward_points"`
	TotalLifetimePoints int64     `json:"total_lifetime_points"`
	RewardTier          string    `json:"reward_tier"`
	LoyaltyStars        int       `json:"loyalty_stars"`
	CreatedAt           time.Time `json:"created_at"`
}

// UpdateMeReq is a partial update; nil fields are left untouched.
type UpdateMeReq struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=32"`
	AvatarURL   *string `json:"avatar_url" binding:"omitempty,max=500"`
}

type UpdateMeResp struct {
	User         UserResp `json:"user"`
	PointsEarned int64    `json:"points_earned"`
}

type ListUsersReq struct {
	Role   string `form:"role"`
	Cursor uint64 `form:"cursor"`
	Limit  int    `form:"limit,default=20"`
}

type ListUsersResp struct {
	Users      []UserResp `json:"users"`
	NextCursor uint64     `json:"next_cursor"`
	HasMore    bool       `json:"has_more"`
}

package types

type CreateBusinessReq struct {
	Name        string `json:"name" binding:"required,max=150"`
	Description string `json:"description"`
	Phone       string `json:"phone" binding:"max=32"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address" binding:"max=255"`
	City        string `json:"city" binding:"max=100"`
	LogoURL     string `json:"logo_url" binding:"max=500"`
}

type UpdateBusinessReq struct {
	Name        *string `json:"name" binding:"omitempty,max=150"`
	Description *string `json:"description"`
	Phone       *string `json:"phone" binding:"omitempty,max=32"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	LogoURL     *string `json:"logo_url" binding:"omitempty,max=500"`
}

type ListBusinessesReq struct {
	City   string `form:"city"`
	Cursor uint64 `form:"cursor"`
	Limit  int    `form:"limit,default=20"`
}

type BusinessResp struct {
	ID          uint64        `json:"id"`
	OwnerID     uint64        `json:"owner_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email"`
	Address     string        `json:"address"`
	City        string        `json:"city"`
	LogoURL     string        `json:"logo_url"`
	Complete    bool          `json:"profile_complete"`
	Services    []ServiceResp `json:"services,omitempty"`
	Rating      *RatingResp   `json:"rating,omitempty"`
}

type ListBusinessesResp struct {
	Businesses []BusinessResp `json:"businesses"`
	NextCursor uint64         `json:"next_cursor"`
	HasMore    bool           `json:"has_more"`
}

type RatingResp struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}

type CreateServiceReq struct {
	Name            string `json:"name" binding:"required,max=150"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,gt=0"`
	PriceCents      int64  `json:"price_cents" binding:"gte=0"`
}

type ServiceResp struct {
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int64  `json:"price_cents"`
}

type CreateRedeemableReq struct {
	Title       string `json:"title" binding:"required,max=150"`
	Description string `json:"description"`
	PointsCost  int64  `json:"points_cost" binding:"required,gt=0"`
	ValidDays   int    `json:"valid_days" binding:"gte=0"`
}

type RedeemableResp struct {
	ID          uint64 `json:"id"`
	BusinessID  uint64 `json:"business_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PointsCost  int64  `json:"points_cost"`
	ValidDays   int    `json:"valid_days"`
}

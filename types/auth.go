package types

type RegisterReq struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	DisplayName  string `json:"display_name"`
	Role         string `json:"role" binding:"omitempty,oneof=user business"`
	ReferralCode string `json:"referral_code"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResp struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"`
	User        UserResp `json:"user"`
}

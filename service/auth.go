package service

import (
	"Petly/config"
	"Petly/models"
	"Petly/pkg/encrypt"
	"Petly/pkg/jwt"
	"Petly/pkg/log"
	"Petly/pkg/utils"
	"Petly/types"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterReq) (*types.TokenResp, error)
	Login(ctx context.Context, req *types.LoginReq) (*types.TokenResp, error)
}

type AuthService struct {
	Config   *config.Config
	Users    UserStore
	Referral IReferralService
}

// Register creates a client or business account. Admins are never self-registered.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterReq) (*types.TokenResp, error) {
	email := utils.NormalizeEmail(req.Email)
	if s.Users.IsEmailExist(ctx, email) {
		return nil, ErrEmailTaken
	}

	role := req.Role
	if role != models.RoleBusiness {
		role = models.RoleUser
	}
	hash, err := encrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.Users{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		DisplayName:  req.DisplayName,
		RewardTier:   "bronze",
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.Referral.AttachOnRegister(ctx, user, req.ReferralCode); err != nil {
		log.L.Warn("referral attach failed", zap.Uint64("user_id", user.ID), zap.Error(err))
	}
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req *types.LoginReq) (*types.TokenResp, error) {
	user, err := s.Users.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !encrypt.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *models.Users) (*types.TokenResp, error) {
	ttl := time.Duration(s.Config.Jwt.AccessTTL) * time.Second
	token, err := jwt.GenerateToken([]byte(s.Config.Jwt.Secret), user.ID, user.Email, user.Role, jwt.TypeAccess, ttl)
	if err != nil {
		return nil, err
	}
	return &types.TokenResp{
		AccessToken: token,
		ExpiresIn:   int64(ttl.Seconds()),
		User:        userResp(user),
	}, nil
}

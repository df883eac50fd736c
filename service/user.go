package service

import (
	"Petly/internal/loyalty"
	"Petly/models"
	"Petly/pkg/utils"
	"Petly/types"
	"context"
	"strings"
)

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	Me(ctx context.Context, s *types.Session) (*types.UserResp, error)
	UpdateMe(ctx context.Context, s *types.Session, req *types.UpdateMeReq) (*types.UpdateMeResp, error)
	List(ctx context.Context, req *types.ListUsersReq) (*types.ListUsersResp, error)
}

type UserService struct {
	Users  UserStore
	Reward IRewardService
}

func userResp(u *models.Users) types.UserResp {
	return types.UserResp{
		ID:                  u.ID,
		Email:               u.Email,
		Role:                u.Role,
		DisplayName:         u.DisplayName,
		Phone:               u.Phone,
		AvatarURL:           u.AvatarURL,
		RewardPoints:        u.RewardPoints,
		TotalLifetimePoints: u.TotalLifetimePoints,
		RewardTier:          u.RewardTier,
		LoyaltyStars:        u.LoyaltyStars,
		CreatedAt:           u.CreatedAt,
	}
}

func (s *UserService) Me(ctx context.Context, sess *types.Session) (*types.UserResp, error) {
	u, err := s.Users.FindById(ctx, sess.UserID)
	if err != nil {
		return nil, notFound(err)
	}
	resp := userResp(u)
	return &resp, nil
}

// UpdateMe applies a partial update. profile_completed is granted once, when
// a profile with neither display name nor phone gets both. The grant goes
// first: its key is per user, so a retry after a failed write cannot double it.
func (s *UserService) UpdateMe(ctx context.Context, sess *types.Session, req *types.UpdateMeReq) (*types.UpdateMeResp, error) {
	before, err := s.Users.FindById(ctx, sess.UserID)
	if err != nil {
		return nil, notFound(err)
	}

	after := *before
	updates := map[string]any{}
	if req.DisplayName != nil {
		after.DisplayName = strings.TrimSpace(*req.DisplayName)
		updates["display_name"] = after.DisplayName
	}
	if req.Phone != nil {
		after.Phone = strings.TrimSpace(*req.Phone)
		updates["phone"] = after.Phone
	}
	if req.AvatarURL != nil {
		after.AvatarURL = *req.AvatarURL
		updates["avatar_url"] = after.AvatarURL
	}

	resp := &types.UpdateMeResp{}
	if loyalty.EarnsProfileCompletion(before.DisplayName, before.Phone, after.DisplayName, after.Phone) {
		res, err := s.Reward.Grant(ctx, sess.UserID, loyalty.ProfileCompleted,
			grantKey(loyalty.ProfileCompleted, sess.UserID), 0, nil)
		if err != nil {
			return nil, err
		}
		resp.PointsEarned = earned(res, loyalty.PointsFor(loyalty.ProfileCompleted))
		after.RewardPoints = res.Account.Points
		after.TotalLifetimePoints = res.Account.Lifetime
		after.RewardTier = string(res.Account.Tier)
		after.LoyaltyStars = res.Account.Stars
	}
	if err := s.Users.Update(ctx, sess.UserID, updates); err != nil {
		return nil, err
	}
	resp.User = userResp(&after)
	return resp, nil
}

func (s *UserService) List(ctx context.Context, req *types.ListUsersReq) (*types.ListUsersResp, error) {
	limit := utils.ClampLimit(req.Limit, 20, 100)
	users, err := s.Users.ListPage(ctx, req.Role, req.Cursor, limit+1)
	if err != nil {
		return nil, err
	}
	resp := &types.ListUsersResp{Users: make([]types.UserResp, 0, len(users))}
	if len(users) > limit {
		resp.HasMore = true
		users = users[:limit]
		resp.NextCursor = users[len(users)-1].ID
	}
	for _, u := range users {
		resp.Users = append(resp.Users, userResp(u))
	}
	return resp, nil
}

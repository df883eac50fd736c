package service

import (
	"Petly/dao"
	"Petly/internal/loyalty"
	"Petly/models"
	"Petly/pkg/log"
	"Petly/pkg/utils"
	"Petly/types"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ IRedemptionService = (*RedemptionService)(nil)

type IRedemptionService interface {
	Catalog(ctx context.Context, s *types.Session) (*types.CatalogResp, error)
	// Redeem spends points on a platform reward; a repeated key returns the first redemption.
	Redeem(ctx context.Context, s *types.Session, rewardID uint64, idemKey string) (*types.RedeemResp, error)
	RedeemBusiness(ctx context.Context, s *types.Session, businessID, redeemableID uint64, idemKey string) (*types.RedeemResp, error)
	Redemptions(ctx context.Context, s *types.Session, req *types.CursorReq) (*types.ListRedemptionsResp, error)
	CreatePlatformReward(ctx context.Context, req *types.CreatePlatformRewardReq) (*types.CatalogItem, error)
	// ExpireDue marks active redemptions past their expiry as expired.
	ExpireDue(ctx context.Context) (int64, error)
}

type RedemptionService struct {
	Ledger      LedgerStore
	Users       UserStore
	Platform    PlatformRewardStore
	Redeemables RedeemableStore
	Store       RedemptionStore
	Now         func() time.Time `wire:"-"`
}

func (s *RedemptionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func redemptionResp(r *models.RewardRedemption) types.RedemptionResp {
	return types.RedemptionResp{
		ID:                   r.ID,
		Title:                r.Title,
		PointsSpent:          r.PointsSpent,
		Status:               r.Status,
		PlatformRewardID:     r.PlatformRewardID,
		BusinessRedeemableID: r.BusinessRedeemableID,
		BusinessID:           r.BusinessID,
		ExpiresAt:            r.ExpiresAt,
		CreatedAt:            r.CreatedAt,
	}
}

func catalogItem(r *models.PlatformReward, acc loyalty.Account) types.CatalogItem {
	minTier, err := loyalty.ParseTier(r.MinTier)
	if err != nil {
		minTier = loyalty.Bronze
	}
	return types.CatalogItem{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		PointsCost:  r.PointsCost,
		MinTier:     string(minTier),
		ValidDays:   r.ValidDays,
		Eligible:    loyalty.TierFor(acc.Lifetime).AtLeast(minTier),
		Affordable:  acc.Points >= r.PointsCost,
	}
}

func (s *RedemptionService) account(ctx context.Context, userID uint64) (loyalty.Account, error) {
	u, err := s.Users.FindById(ctx, userID)
	if err != nil {
		return loyalty.Account{}, notFound(err)
	}
	return loyalty.AccountOf(u.RewardPoints, u.TotalLifetimePoints, u.RewardTier, u.LoyaltyStars), nil
}

func (s *RedemptionService) Catalog(ctx context.Context, sess *types.Session) (*types.CatalogResp, error) {
	acc, err := s.account(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	rewards, err := s.Platform.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	resp := &types.CatalogResp{Account: accountResp(acc), Rewards: make([]types.CatalogItem, 0, len(rewards))}
	for _, r := range rewards {
		resp.Rewards = append(resp.Rewards, catalogItem(r, acc))
	}
	return resp, nil
}

func redeemKey(userID uint64, idemKey string) string {
	if idemKey == "" {
		idemKey = uuid.NewString()
	}
	return fmt.Sprintf("redeem:%d:%s", userID, idemKey)
}

func (s *RedemptionService) Redeem(ctx context.Context, sess *types.Session, rewardID uint64, idemKey string) (*types.RedeemResp, error) {
	reward, err := s.Platform.FindById(ctx, rewardID)
	if err != nil {
		return nil, notFound(err)
	}
	if !reward.Active {
		return nil, ErrNotFound
	}
	minTier, err := loyalty.ParseTier(reward.MinTier)
	if err != nil {
		minTier = loyalty.Bronze
	}
	id := reward.ID
	return s.redeem(ctx, dao.RedeemCmd{
		UserID:           sess.UserID,
		Title:            reward.Title,
		Cost:             reward.PointsCost,
		MinTier:          minTier,
		ValidDays:        reward.ValidDays,
		PlatformRewardID: &id,
		IdempotencyKey:   redeemKey(sess.UserID, idemKey),
		Now:              s.now(),
	})
}

func (s *RedemptionService) RedeemBusiness(ctx context.Context, sess *types.Session, businessID, redeemableID uint64, idemKey string) (*types.RedeemResp, error) {
	item, err := s.Redeemables.FindInBusiness(ctx, redeemableID, businessID)
	if err != nil {
		return nil, notFound(err)
	}
	rid, bid := item.ID, item.BusinessID
	return s.redeem(ctx, dao.RedeemCmd{
		UserID:               sess.UserID,
		Title:                item.Title,
		Cost:                 item.PointsCost,
		ValidDays:            item.ValidDays,
		BusinessRedeemableID: &rid,
		BusinessID:           &bid,
		IdempotencyKey:       redeemKey(sess.UserID, idemKey),
		Now:                  s.now(),
	})
}

func (s *RedemptionService) redeem(ctx context.Context, cmd dao.RedeemCmd) (*types.RedeemResp, error) {
	res, err := s.Ledger.Redeem(ctx, cmd)
	if errors.Is(err, dao.ErrUserNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !res.Duplicate {
		log.L.Info("points redeemed",
			zap.Uint64("user_id", cmd.UserID),
			zap.String("title", cmd.Title),
			zap.Int64("cost", cmd.Cost),
		)
	}
	return &types.RedeemResp{
		Redemption: redemptionResp(res.Redemption),
		Account:    accountResp(res.Account),
		Duplicate:  res.Duplicate,
	}, nil
}

func (s *RedemptionService) Redemptions(ctx context.Context, sess *types.Session, req *types.CursorReq) (*types.ListRedemptionsResp, error) {
	limit := utils.ClampLimit(req.Limit, 20, 100)
	items, err := s.Store.ListByUser(ctx, sess.UserID, req.Cursor, limit+1)
	if err != nil {
		return nil, err
	}
	resp := &types.ListRedemptionsResp{Redemptions: make([]types.RedemptionResp, 0, len(items))}
	if len(items) > limit {
		resp.HasMore = true
		items = items[:limit]
		resp.NextCursor = items[len(items)-1].ID
	}
	for _, r := range items {
		resp.Redemptions = append(resp.Redemptions, redemptionResp(r))
	}
	return resp, nil
}

func (s *RedemptionService) CreatePlatformReward(ctx context.Context, req *types.CreatePlatformRewardReq) (*types.CatalogItem, error) {
	minTier := loyalty.Bronze
	if req.MinTier != "" {
		t, err := loyalty.ParseTier(req.MinTier)
		if err != nil {
			return nil, invalid("Nivel mínimo desconocido")
		}
		minTier = t
	}
	reward := &models.PlatformReward{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		PointsCost:  req.PointsCost,
		MinTier:     string(minTier),
		ValidDays:   req.ValidDays,
		Active:      true,
	}
	if err := s.Platform.Create(ctx, reward); err != nil {
		return nil, err
	}
	item := catalogItem(reward, loyalty.Account{})
	return &item, nil
}

func (s *RedemptionService) ExpireDue(ctx context.Context) (int64, error) {
	n, err := s.Store.Expire(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("expire redemptions: %w", err)
	}
	return n, nil
}

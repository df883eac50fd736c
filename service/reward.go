package service

import (
	"Petly/dao"
	"Petly/internal/loyalty"
	"Petly/pkg/log"
	"Petly/pkg/utils"
	"Petly/types"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var _ IRewardService = (*RewardService)(nil)

type IRewardService interface {
	// Grant credits action to userID once per key. amount is read only by
	// variable actions (milestone, manual adjustment).
	Grant(ctx context.Context, userID uint64, action loyalty.Action, key string, amount int64, meta map[string]any) (*dao.GrantResult, error)
	Balance(ctx context.Context, userID uint64) (*types.PointsAccount, error)
	Records(ctx context.Context, userID uint64, req *types.ListPointRecordsReq) (*types.ListPointsRecord, error)
	ManualGrant(ctx context.Context, req *types.ManualGrantReq) (*types.GrantResp, error)
}

type RewardService struct {
	Ledger  LedgerStore
	Users   UserStore
	Actions RewardActionStore
}

// grantKey builds the idempotency key of a grant from the action and its business reference.
func grantKey(action loyalty.Action, ref ...any) string {
	key := string(action)
	for _, r := range ref {
		key += fmt.Sprintf(":%v", r)
	}
	return key
}

func (s *RewardService) Grant(ctx context.Context, userID uint64, action loyalty.Action, key string, amount int64, meta map[string]any) (*dao.GrantResult, error) {
	points, stars, err := loyalty.Award(action, amount)
	if err != nil {
		return nil, err
	}

	res, err := s.Ledger.Grant(ctx, dao.GrantCmd{
		UserID:         userID,
		Action:         action,
		Points:         points,
		Stars:          stars,
		Description:    loyalty.Describe(action),
		Metadata:       meta,
		IdempotencyKey: key,
	})
	if err != nil {
		grantsTotal.WithLabelValues(string(action), "error").Inc()
		log.L.Error("reward grant failed",
			zap.Uint64("user_id", userID),
			zap.String("action", string(action)),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}
	if res.Duplicate {
		grantsTotal.WithLabelValues(string(action), "duplicate").Inc()
	} else {
		grantsTotal.WithLabelValues(string(action), "granted").Inc()
	}
	return res, nil
}

// earned is the number of points a grant actually added.
func earned(res *dao.GrantResult, points int64) int64 {
	if res == nil || res.Duplicate {
		return 0
	}
	return points
}

func accountResp(acc loyalty.Account) types.PointsAccount {
	out := types.PointsAccount{
		Balance:  acc.Points,
		Lifetime: acc.Lifetime,
		Tier:     string(loyalty.TierFor(acc.Lifetime)),
		Stars:    acc.Stars,
	}
	if next, missing, ok := loyalty.NextTier(acc.Lifetime); ok {
		out.NextTier = string(next)
		out.PointsToNext = missing
	}
	return out
}

func (s *RewardService) Balance(ctx context.Context, userID uint64) (*types.PointsAccount, error) {
	u, err := s.Users.FindById(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	resp := accountResp(loyalty.AccountOf(u.RewardPoints, u.TotalLifetimePoints, u.RewardTier, u.LoyaltyStars))
	return &resp, nil
}

func (s *RewardService) Records(ctx context.Context, userID uint64, req *types.ListPointRecordsReq) (*types.ListPointsRecord, error) {
	limit := utils.ClampLimit(req.Limit, 20, 100)
	logs, err := s.Actions.ListByUser(ctx, userID, req.Action, req.Cursor, limit+1)
	if err != nil {
		return nil, err
	}

	resp := &types.ListPointsRecord{
		Records: make([]types.PointRecord, 0, len(logs)),
	}
	if len(logs) > limit {
		resp.HasMore = true
		logs = logs[:limit]
		resp.NextCursor = logs[len(logs)-1].ID
	}
	for _, l := range logs {
		resp.Records = append(resp.Records, types.PointRecord{
			ID:          l.ID,
			Action:      l.ActionType,
			Points:      l.Points,
			Stars:       l.Stars,
			Description: l.Description,
			CreatedAt:   l.CreatedAt,
		})
	}
	return resp, nil
}

func (s *RewardService) ManualGrant(ctx context.Context, req *types.ManualGrantReq) (*types.GrantResp, error) {
	res, err := s.Grant(ctx, req.UserID, loyalty.ManualAdjustment,
		grantKey(loyalty.ManualAdjustment, req.UserID, req.IdempotencyKey), req.Points,
		map[string]any{"reason": req.Reason})
	if errors.Is(err, dao.ErrUserNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &types.GrantResp{Account: accountResp(res.Account), Duplicate: res.Duplicate}, nil
}

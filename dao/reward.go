package dao

import (
	"Petly/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type RewardActions struct {
	Repo[models.RewardAction]
}

func NewRewardActions(db *gorm.DB) *RewardActions {
	return &RewardActions{Repo: NewRepo[models.RewardAction](db)}
}

func (r *RewardActions) ListByUser(ctx context.Context, userID uint64, action string, cursor uint64, limit int) ([]*models.RewardAction, error) {
	q := r.Db.WithContext(ctx).Model(&models.RewardAction{}).Where("user_id = ?", userID)
	if action != "" {
		q = q.Where("action_type = ?", action)
	}
	return Page[models.RewardAction](q, cursor, limit)
}

type PlatformRewards struct {
	Repo[models.PlatformReward]
}

func NewPlatformRewards(db *gorm.DB) *PlatformRewards {
	return &PlatformRewards{Repo: NewRepo[models.PlatformReward](db)}
}

func (p *PlatformRewards) ListActive(ctx context.Context) ([]*models.PlatformReward, error) {
	var items []*models.PlatformReward
	err := p.Db.WithContext(ctx).Where("active = ?", true).Order("points_cost ASC").Find(&items).Error
	return items, err
}

type Redemptions struct {
	Repo[models.RewardRedemption]
}

func NewRedemptions(db *gorm.DB) *Redemptions {
	return &Redemptions{Repo: NewRepo[models.RewardRedemption](db)}
}

func (r *Redemptions) ListByUser(ctx context.Context, userID uint64, cursor uint64, limit int) ([]*models.RewardRedemption, error) {
	q := r.Db.WithContext(ctx).Model(&models.RewardRedemption{}).Where("user_id = ?", userID)
	return Page[models.RewardRedemption](q, cursor, limit)
}

// Expire marks active redemptions past their expiry.
func (r *Redemptions) Expire(ctx context.Context, now time.Time) (int64, error) {
	res := r.Db.WithContext(ctx).Model(&models.RewardRedemption{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", models.RedemptionActive, now).
		Update("status", models.RedemptionExpired)
	return res.RowsAffected, res.Error
}

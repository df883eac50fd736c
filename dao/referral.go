package dao

import (
	"Petly/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Referrals struct {
	Repo[models.ReferralInvitation]
}

func NewReferrals(db *gorm.DB) *Referrals {
	return &Referrals{Repo: NewRepo[models.ReferralInvitation](db)}
}

func (r *Referrals) ListByInviter(ctx context.Context, inviterID uint64) ([]*models.ReferralInvitation, error) {
	return r.Repo.FindAll(ctx, "inviter_id = ?", inviterID)
}

func (r *Referrals) FindPendingByCode(ctx context.Context, code string) (*models.ReferralInvitation, error) {
	return r.Repo.FindByWhere(ctx, "code = ? AND status = ?", code, models.ReferralPending)
}

func (r *Referrals) FindPendingByEmail(ctx context.Context, email string) (*models.ReferralInvitation, error) {
	var item models.ReferralInvitation
	err := r.Db.WithContext(ctx).
		Where("invitee_email = ? AND status = ?", email, models.ReferralPending).
		Order("id ASC").
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Attach links a pending invitation to the account that accepted it.
func (r *Referrals) Attach(ctx context.Context, id, inviteeID uint64) (bool, error) {
	res := r.Db.WithContext(ctx).Model(&models.ReferralInvitation{}).
		Where("id = ? AND status = ?", id, models.ReferralPending).
		Updates(map[string]any{"status": models.ReferralRegistered, "invitee_id": inviteeID})
	return res.RowsAffected == 1, res.Error
}

func (r *Referrals) FindRegistered(ctx context.Context, inviteeID uint64, kind string) (*models.ReferralInvitation, error) {
	return r.Repo.FindByWhere(ctx, "invitee_id = ? AND kind = ? AND status = ?", inviteeID, kind, models.ReferralRegistered)
}

func (r *Referrals) MarkRewarded(ctx context.Context, id uint64, at time.Time) (bool, error) {
	res := r.Db.WithContext(ctx).Model(&models.ReferralInvitation{}).
		Where("id = ? AND status = ?", id, models.ReferralRegistered).
		Updates(map[string]any{"status": models.ReferralRewarded, "rewarded_at": at})
	return res.RowsAffected == 1, res.Error
}

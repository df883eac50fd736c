package dao

import (
	"Petly/models"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Businesses struct {
	Repo[models.Business]
}

func NewBusinesses(db *gorm.DB) *Businesses {
	return &Businesses{Repo: NewRepo[models.Business](db)}
}

func (b *Businesses) ListPage(ctx context.Context, city string, cursor uint64, limit int) ([]*models.Business, error) {
	q := b.Db.WithContext(ctx).Model(&models.Business{})
	if city != "" {
		q = q.Where("city = ?", city)
	}
	return Page[models.Business](q, cursor, limit)
}

func (b *Businesses) Update(ctx context.Context, id uint64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	if err := b.Db.WithContext(ctx).Model(&models.Business{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("dao.Businesses.Update error: %w", err)
	}
	return nil
}

// MarkCompleted stamps completed_at once; false when it was already set.
func (b *Businesses) MarkCompleted(ctx context.Context, id uint64, at time.Time) (bool, error) {
	res := b.Db.WithContext(ctx).Model(&models.Business{}).
		Where("id = ? AND completed_at IS NULL", id).
		Update("completed_at", at)
	return res.RowsAffected == 1, res.Error
}

type BusinessServices struct {
	Repo[models.BusinessService]
}

func NewBusinessServices(db *gorm.DB) *BusinessServices {
	return &BusinessServices{Repo: NewRepo[models.BusinessService](db)}
}

func (s *BusinessServices) ListByBusiness(ctx context.Context, businessID uint64) ([]*models.BusinessService, error) {
	return s.Repo.FindAll(ctx, "business_id = ? AND active = ?", businessID, true)
}

// FindMany returns the active services of a business among ids.
func (s *BusinessServices) FindMany(ctx context.Context, businessID uint64, ids []uint64) ([]*models.BusinessService, error) {
	var items []*models.BusinessService
	err := s.Db.WithContext(ctx).
		Where("business_id = ? AND active = ? AND id IN ?", businessID, true, ids).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

type Redeemables struct {
	Repo[models.BusinessRedeemable]
}

func NewRedeemables(db *gorm.DB) *Redeemables {
	return &Redeemables{Repo: NewRepo[models.BusinessRedeemable](db)}
}

func (r *Redeemables) ListByBusiness(ctx context.Context, businessID uint64) ([]*models.BusinessRedeemable, error) {
	return r.Repo.FindAll(ctx, "business_id = ? AND active = ?", businessID, true)
}

func (r *Redeemables) FindInBusiness(ctx context.Context, id, businessID uint64) (*models.BusinessRedeemable, error) {
	return r.Repo.FindByWhere(ctx, "id = ? AND business_id = ? AND active = ?", id, businessID, true)
}

// Deactivate hides a redeemable; redemptions keep their weak reference.
func (r *Redeemables) Deactivate(ctx context.Context, id, businessID uint64) (bool, error) {
	res := r.Db.WithContext(ctx).Model(&models.BusinessRedeemable{}).
		Where("id = ? AND business_id = ?", id, businessID).
		Update("active", false)
	return res.RowsAffected == 1, res.Error
}

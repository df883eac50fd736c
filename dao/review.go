package dao

import (
	"Petly/models"
	"context"

	"gorm.io/gorm"
)

type Reviews struct {
	Repo[models.Review]
}

func NewReviews(db *gorm.DB) *Reviews {
	return &Reviews{Repo: NewRepo[models.Review](db)}
}

func (r *Reviews) ListByBusiness(ctx context.Context, businessID uint64, cursor uint64, limit int) ([]*models.Review, error) {
	q := r.Db.WithContext(ctx).Model(&models.Review{}).Where("business_id = ?", businessID)
	return Page[models.Review](q, cursor, limit)
}

type RatingSummary struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}

func (r *Reviews) Summary(ctx context.Context, businessID uint64) (*RatingSummary, error) {
	var s RatingSummary
	err := r.Db.WithContext(ctx).Model(&models.Review{}).
		Select("COUNT(*) AS count, IFNULL(AVG(rating), 0) AS average").
		Where("business_id = ?", businessID).
		Scan(&s).Error
	return &s, err
}

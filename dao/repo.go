package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repo is the generic CRUD base embedded by every DAO.
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r *Repo[T]) Create(ctx context.Context, data *T) error {
	return r.Db.WithContext(ctx).Create(data).Error
}

func (r *Repo[T]) FindById(ctx context.Context, id uint64) (*T, error) {
	var item T
	if err := r.Db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var item T
	if err := r.Db.WithContext(ctx).Where(where, args...).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) FindAll(ctx context.Context, where string, args ...any) ([]*T, error) {
	var items []*T
	if err := r.Db.WithContext(ctx).Where(where, args...).Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var item T
	err := r.Db.WithContext(ctx).Select("id").Where(where, args...).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *Repo[T]) UpdateById(ctx context.Context, id uint64, data map[string]any) (int64, error) {
	var item T
	res := r.Db.WithContext(ctx).Model(&item).Where("id = ?", id).Updates(data)
	return res.RowsAffected, res.Error
}

func (r *Repo[T]) Count(ctx context.Context, where string, args ...any) (int64, error) {
	var (
		item  T
		count int64
	)
	err := r.Db.WithContext(ctx).Model(&item).Where(where, args...).Count(&count).Error
	return count, err
}

// Page lists rows older than cursor, newest first. Callers ask for limit+1 to probe has-more.
func Page[T any](q *gorm.DB, cursor uint64, limit int) ([]*T, error) {
	var items []*T
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	err := q.Order("id DESC").Limit(limit).Find(&items).Error
	return items, err
}

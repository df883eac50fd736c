package dao

import (
	"Petly/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.Users]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.Users](db),
	}
}

func (u *Users) FindByEmail(ctx context.Context, email string) (*models.Users, error) {
	return u.Repo.FindByWhere(ctx, "email = ?", email)
}

func (u *Users) IsEmailExist(ctx context.Context, email string) bool {
	exist, _ := u.Repo.IsExist(ctx, "email = ?", email)
	return exist
}

func (u *Users) Update(ctx context.Context, userID uint64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	err := u.Db.WithContext(ctx).
		Model(&models.Users{}).
		Where("id = ?", userID).
		Updates(updates).Error

	if err != nil {
		return fmt.Errorf("dao.Users.Update error: %w", err)
	}

	return nil
}

func (u *Users) ListPage(ctx context.Context, role string, cursor uint64, limit int) ([]*models.Users, error) {
	q := u.Db.WithContext(ctx).Model(&models.Users{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	return Page[models.Users](q, cursor, limit)
}

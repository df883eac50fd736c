package dao

import (
	"Petly/models"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Notifications struct {
	Repo[models.Notification]
}

func NewNotifications(db *gorm.DB) *Notifications {
	return &Notifications{Repo: NewRepo[models.Notification](db)}
}

// Insert stores a notification once per dedupe key.
func (n *Notifications) Insert(ctx context.Context, item *models.Notification) (bool, error) {
	res := n.Db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(item)
	if res.Error != nil {
		return false, fmt.Errorf("dao.Notifications.Insert error: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (n *Notifications) ListByUser(ctx context.Context, userID uint64, cursor uint64, limit int) ([]*models.Notification, error) {
	q := n.Db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	return Page[models.Notification](q, cursor, limit)
}

func (n *Notifications) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	return n.Repo.Count(ctx, "user_id = ? AND is_read = ?", userID, false)
}

func (n *Notifications) MarkRead(ctx context.Context, userID, id uint64) (bool, error) {
	res := n.Db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND is_read = ?", id, userID, false).
		Update("is_read", true)
	return res.RowsAffected == 1, res.Error
}

func (n *Notifications) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	res := n.Db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

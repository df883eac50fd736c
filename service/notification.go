package service

import (
	"Petly/internal/effect"
	"Petly/models"
	"Petly/pkg/log"
	"Petly/pkg/utils"
	"Petly/types"
	"context"

	"go.uber.org/zap"
)

var (
	_ INotificationService    = (*NotificationService)(nil)
	_ effect.NotificationSink = (*NotificationService)(nil)
)

type INotificationService interface {
	List(ctx context.Context, s *types.Session, req *types.CursorReq) (*types.ListNotificationsResp, error)
	UnreadCount(ctx context.Context, s *types.Session) (*types.UnreadCountResp, error)
	MarkRead(ctx context.Context, s *types.Session, id uint64) error
	MarkAllRead(ctx context.Context, s *types.Session) error
}

type NotificationService struct {
	Notifications NotificationStore
	Unread        UnreadCounter
}

// Deliver stores a notification intent. The dedupe key makes redelivery a no-op.
func (s *NotificationService) Deliver(ctx context.Context, key string, n *effect.Notification) error {
	item := &models.Notification{
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		DedupeKey: key,
	}
	if n.AppointmentID > 0 {
		id := n.AppointmentID
		item.AppointmentID = &id
	}
	inserted, err := s.Notifications.Insert(ctx, item)
	if err != nil {
		return err
	}
	if inserted {
		if err := s.Unread.Incr(ctx, n.UserID); err != nil {
			log.L.Warn("unread counter incr failed", zap.Uint64("user_id", n.UserID), zap.Error(err))
		}
	}
	return nil
}

func notificationResp(n *models.Notification) types.NotificationResp {
	return types.NotificationResp{
		ID:            n.ID,
		Type:          n.Type,
		Title:         n.Title,
		Message:       n.Message,
		Link:          n.Link,
		AppointmentID: n.AppointmentID,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt,
	}
}

func (s *NotificationService) List(ctx context.Context, sess *types.Session, req *types.CursorReq) (*types.ListNotificationsResp, error) {
	limit := utils.ClampLimit(req.Limit, 20, 100)
	items, err := s.Notifications.ListByUser(ctx, sess.UserID, req.Cursor, limit+1)
	if err != nil {
		return nil, err
	}
	resp := &types.ListNotificationsResp{Notifications: make([]types.NotificationResp, 0, len(items))}
	if len(items) > limit {
		resp.HasMore = true
		items = items[:limit]
		resp.NextCursor = items[len(items)-1].ID
	}
	for _, n := range items {
		resp.Notifications = append(resp.Notifications, notificationResp(n))
	}
	return resp, nil
}

// UnreadCount reads the cached counter and rebuilds it from MySQL on a miss.
func (s *NotificationService) UnreadCount(ctx context.Context, sess *types.Session) (*types.UnreadCountResp, error) {
	if n, ok := s.Unread.Get(ctx, sess.UserID); ok {
		return &types.UnreadCountResp{Unread: n}, nil
	}
	n, err := s.Notifications.CountUnread(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.Unread.Set(ctx, sess.UserID, n); err != nil {
		log.L.Warn("unread counter set failed", zap.Uint64("user_id", sess.UserID), zap.Error(err))
	}
	return &types.UnreadCountResp{Unread: n}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, sess *types.Session, id uint64) error {
	changed, err := s.Notifications.MarkRead(ctx, sess.UserID, id)
	if err != nil {
		return err
	}
	if changed {
		s.resetUnread(ctx, sess.UserID)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, sess *types.Session) error {
	if _, err := s.Notifications.MarkAllRead(ctx, sess.UserID); err != nil {
		return err
	}
	s.resetUnread(ctx, sess.UserID)
	return nil
}

func (s *NotificationService) resetUnread(ctx context.Context, uid uint64) {
	if err := s.Unread.Reset(ctx, uid); err != nil {
		log.L.Warn("unread counter reset failed", zap.Uint64("user_id", uid), zap.Error(err))
	}
}

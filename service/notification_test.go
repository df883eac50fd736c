package service

import (
	"context"
	"sync"
	"testing"

	"Petly/internal/effect"
	"Petly/models"
	"Petly/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifications struct {
	mu   sync.Mutex
	rows []*models.Notification
}

func (f *fakeNotifications) Insert(_ context.Context, n *models.Notification) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.DedupeKey == n.DedupeKey {
			return false, nil
		}
	}
	n.ID = uint64(len(f.rows) + 1)
	f.rows = append(f.rows, n)
	return true, nil
}

func (f *fakeNotifications) ListByUser(_ context.Context, userID, cursor uint64, limit int) ([]*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Notification
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		r := f.rows[i]
		if r.UserID == userID && (cursor == 0 || r.ID < cursor) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeNotifications) CountUnread(_ context.Context, userID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.rows {
		if r.UserID == userID && !r.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, userID, id uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ID == id && r.UserID == userID && !r.IsRead {
			r.IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotifications) MarkAllRead(_ context.Context, userID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.rows {
		if r.UserID == userID && !r.IsRead {
			r.IsRead = true
			n++
		}
	}
	return n, nil
}

type fakeUnread struct {
	mu     sync.Mutex
	counts map[uint64]int64
}

func newFakeUnread() *fakeUnread {
	return &fakeUnread{counts: map[uint64]int64{}}
}

// Incr only touches a cached counter, like the redis implementation.
func (f *fakeUnread) Incr(_ context.Context, uid uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.counts[uid]; ok {
		f.counts[uid]++
	}
	return nil
}

func (f *fakeUnread) Get(_ context.Context, uid uint64) (int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.counts[uid]
	return n, ok
}

func (f *fakeUnread) Set(_ context.Context, uid uint64, count int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[uid] = count
	return nil
}

func (f *fakeUnread) Reset(_ context.Context, uid uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.counts, uid)
	return nil
}

func notice(userID uint64) *effect.Notification {
	return &effect.Notification{UserID: userID, Type: "appointment_confirmed", Title: "Cita confirmada", AppointmentID: 5}
}

func TestDeliver_Dedupe(t *testing.T) {
	store := &fakeNotifications{}
	svc := &NotificationService{Notifications: store, Unread: newFakeUnread()}
	ctx := context.Background()

	require.NoError(t, svc.Deliver(ctx, "confirm:5:client", notice(clientID)))
	require.NoError(t, svc.Deliver(ctx, "confirm:5:client", notice(clientID)))
	require.NoError(t, svc.Deliver(ctx, "confirm:5:email", notice(clientID)))

	require.Len(t, store.rows, 2)
	require.NotNil(t, store.rows[0].AppointmentID)
	assert.Equal(t, uint64(5), *store.rows[0].AppointmentID)
}

func TestUnreadCount_CacheLifecycle(t *testing.T) {
	store := &fakeNotifications{}
	unread := newFakeUnread()
	svc := &NotificationService{Notifications: store, Unread: unread}
	ctx := context.Background()
	sess := clientSession()

	require.NoError(t, svc.Deliver(ctx, "a", notice(clientID)))
	require.NoError(t, svc.Deliver(ctx, "b", notice(clientID)))
	require.NoError(t, svc.Deliver(ctx, "c", notice(ownerID)))

	// miss: rebuilt from the store
	resp, err := svc.UnreadCount(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Unread)
	cached, ok := unread.Get(ctx, clientID)
	require.True(t, ok)
	assert.Equal(t, int64(2), cached)

	// hit: incremented in place
	require.NoError(t, svc.Deliver(ctx, "d", notice(clientID)))
	resp, err = svc.UnreadCount(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Unread)

	require.NoError(t, svc.MarkRead(ctx, sess, store.rows[0].ID))
	resp, err = svc.UnreadCount(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Unread)

	require.NoError(t, svc.MarkAllRead(ctx, sess))
	resp, err = svc.UnreadCount(ctx, sess)
	require.NoError(t, err)
	assert.Zero(t, resp.Unread)
}

func TestListNotifications(t *testing.T) {
	store := &fakeNotifications{}
	svc := &NotificationService{Notifications: store, Unread: newFakeUnread()}
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, svc.Deliver(ctx, k, notice(clientID)))
	}

	page, err := svc.List(ctx, clientSession(), &types.CursorReq{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Notifications, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, uint64(3), page.Notifications[0].ID)
}

package service

import (
	"Petly/dao"
	"Petly/internal/appointment"
	"Petly/models"
	"context"
	"io"
	"time"
)

// Storage contracts the services depend on. The dao and cache packages
// satisfy them; tests use in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, data *models.Users) error
	FindById(ctx context.Context, id uint64) (*models.Users, error)
	FindByEmail(ctx context.Context, email string) (*models.Users, error)
	IsEmailExist(ctx context.Context, email string) bool
	Update(ctx context.Context, userID uint64, updates map[string]any) error
	ListPage(ctx context.Context, role string, cursor uint64, limit int) ([]*models.Users, error)
}

type LedgerStore interface {
	Grant(ctx context.Context, cmd dao.GrantCmd) (*dao.GrantResult, error)
	Redeem(ctx context.Context, cmd dao.RedeemCmd) (*dao.RedeemResult, error)
}

type RewardActionStore interface {
	ListByUser(ctx context.Context, userID uint64, action string, cursor uint64, limit int) ([]*models.RewardAction, error)
}

type PetStore interface {
	Create(ctx context.Context, data *models.Pet) error
	FindById(ctx context.Context, id uint64) (*models.Pet, error)
	FindOwned(ctx context.Context, id, ownerID uint64) (*models.Pet, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]*models.Pet, error)
	Update(ctx context.Context, id uint64, updates map[string]any) error
	SetPhoto(ctx context.Context, id uint64, url string) (bool, error)
	Delete(ctx context.Context, id, ownerID uint64) (bool, error)
}

type BusinessStore interface {
	Create(ctx context.Context, data *models.Business) error
	FindById(ctx context.Context, id uint64) (*models.Business, error)
	ListPage(ctx context.Context, city string, cursor uint64, limit int) ([]*models.Business, error)
	Update(ctx context.Context, id uint64, updates map[string]any) error
	MarkCompleted(ctx context.Context, id uint64, at time.Time) (bool, error)
}

type ServiceStore interface {
	Create(ctx context.Context, data *models.BusinessService) error
	FindById(ctx context.Context, id uint64) (*models.BusinessService, error)
	ListByBusiness(ctx context.Context, businessID uint64) ([]*models.BusinessService, error)
	FindMany(ctx context.Context, businessID uint64, ids []uint64) ([]*models.BusinessService, error)
}

type RedeemableStore interface {
	Create(ctx context.Context, data *models.BusinessRedeemable) error
	ListByBusiness(ctx context.Context, businessID uint64) ([]*models.BusinessRedeemable, error)
	FindInBusiness(ctx context.Context, id, businessID uint64) (*models.BusinessRedeemable, error)
	Deactivate(ctx context.Context, id, businessID uint64) (bool, error)
}

type AppointmentStore interface {
	FindById(ctx context.Context, id uint64) (*models.Appointment, error)
	CreateBatch(ctx context.Context, items []*models.Appointment) error
	ListByBooking(ctx context.Context, userID uint64, bookingID string) ([]*models.Appointment, error)
	CompareAndSetStatus(ctx context.Context, id uint64, to appointment.Status, from []string, fields map[string]any) (bool, error)
	Confirm(ctx context.Context, id uint64, at time.Time, successor *models.Appointment) (*dao.ConfirmResult, error)
	FindSuccessor(ctx context.Context, parentID uint64) (*models.Appointment, error)
	CountCompletedByUser(ctx context.Context, userID uint64) (int64, error)
	List(ctx context.Context, f dao.ListFilter) ([]*models.Appointment, error)
	ListDueReminders(ctx context.Context, w appointment.ReminderWindow, now time.Time, limit int) ([]*models.Appointment, error)
	MarkReminderSent(ctx context.Context, id uint64, w appointment.ReminderWindow) (bool, error)
	UnmarkReminderSent(ctx context.Context, id uint64, w appointment.ReminderWindow) error
	MarkReviewSent(ctx context.Context, id uint64) (bool, error)
	SubmitReview(ctx context.Context, review *models.Review) error
}

type ReviewStore interface {
	ListByBusiness(ctx context.Context, businessID uint64, cursor uint64, limit int) ([]*models.Review, error)
	Summary(ctx context.Context, businessID uint64) (*dao.RatingSummary, error)
}

type ReferralStore interface {
	Create(ctx context.Context, data *models.ReferralInvitation) error
	ListByInviter(ctx context.Context, inviterID uint64) ([]*models.ReferralInvitation, error)
	FindPendingByCode(ctx context.Context, code string) (*models.ReferralInvitation, error)
	FindPendingByEmail(ctx context.Context, email string) (*models.ReferralInvitation, error)
	Attach(ctx context.Context, id, inviteeID uint64) (bool, error)
	FindRegistered(ctx context.Context, inviteeID uint64, kind string) (*models.ReferralInvitation, error)
	MarkRewarded(ctx context.Context, id uint64, at time.Time) (bool, error)
}

type PlatformRewardStore interface {
	Create(ctx context.Context, data *models.PlatformReward) error
	FindById(ctx context.Context, id uint64) (*models.PlatformReward, error)
	ListActive(ctx context.Context) ([]*models.PlatformReward, error)
}

type RedemptionStore interface {
	ListByUser(ctx context.Context, userID uint64, cursor uint64, limit int) ([]*models.RewardRedemption, error)
	Expire(ctx context.Context, now time.Time) (int64, error)
}

type NotificationStore interface {
	Insert(ctx context.Context, item *models.Notification) (bool, error)
	ListByUser(ctx context.Context, userID uint64, cursor uint64, limit int) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID uint64) (int64, error)
	MarkRead(ctx context.Context, userID, id uint64) (bool, error)
	MarkAllRead(ctx context.Context, userID uint64) (int64, error)
}

type UnreadCounter interface {
	Incr(ctx context.Context, uid uint64) error
	Get(ctx context.Context, uid uint64) (int64, bool)
	Set(ctx context.Context, uid uint64, count int64) error
	Reset(ctx context.Context, uid uint64) error
}

type IdempotencyLock interface {
	Acquire(ctx context.Context, scope string, uid uint64, key string) (bool, string, error)
	Complete(ctx context.Context, scope string, uid uint64, key, result string) error
	Release(ctx context.Context, scope string, uid uint64, key string) error
}

type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

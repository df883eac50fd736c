package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"Petly/config"
	"Petly/internal/effect"
	"Petly/internal/loyalty"
	"Petly/models"
	"Petly/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeReferrals struct {
	mu   sync.Mutex
	rows []*models.ReferralInvitation
}

func (f *fakeReferrals) Create(_ context.Context, r *models.ReferralInvitation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = uint64(len(f.rows) + 1)
	f.rows = append(f.rows, r)
	return nil
}

func (f *fakeReferrals) ListByInviter(_ context.Context, inviterID uint64) ([]*models.ReferralInvitation, error) {
	var out []*models.ReferralInvitation
	for _, r := range f.rows {
		if r.InviterID == inviterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReferrals) find(match func(r *models.ReferralInvitation) bool) (*models.ReferralInvitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if match(r) {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReferrals) FindPendingByCode(_ context.Context, code string) (*models.ReferralInvitation, error) {
	return f.find(func(r *models.ReferralInvitation) bool {
		return r.Code == code && r.Status == models.ReferralPending
	})
}

func (f *fakeReferrals) FindPendingByEmail(_ context.Context, email string) (*models.ReferralInvitation, error) {
	return f.find(func(r *models.ReferralInvitation) bool {
		return r.InviteeEmail == email && r.Status == models.ReferralPending
	})
}

func (f *fakeReferrals) Attach(_ context.Context, id, inviteeID uint64) (bool, error) {
	r, err := f.find(func(r *models.ReferralInvitation) bool { return r.ID == id && r.Status == models.ReferralPending })
	if err != nil {
		return false, nil
	}
	r.InviteeID = &inviteeID
	r.Status = models.ReferralRegistered
	return true, nil
}

func (f *fakeReferrals) FindRegistered(_ context.Context, inviteeID uint64, kind string) (*models.ReferralInvitation, error) {
	return f.find(func(r *models.ReferralInvitation) bool {
		return r.InviteeID != nil && *r.InviteeID == inviteeID && r.Kind == kind && r.Status == models.ReferralRegistered
	})
}

func (f *fakeReferrals) MarkRewarded(_ context.Context, id uint64, at time.Time) (bool, error) {
	r, err := f.find(func(r *models.ReferralInvitation) bool { return r.ID == id && r.Status == models.ReferralRegistered })
	if err != nil {
		return false, nil
	}
	r.Status = models.ReferralRewarded
	r.RewardedAt = &at
	return true, nil
}

func newReferralService(f *fixture) (*ReferralService, *fakeReferrals) {
	store := &fakeReferrals{}
	return &ReferralService{
		Config:    &config.Config{App: &config.App{BaseURL: "https://petly.test/"}},
		Referrals: store,
		Users:     f.users,
		Reward:    f.reward,
		Hasher:    f.hasher,
		Publisher: f.recorder,
		Now:       func() time.Time { return f.now },
	}, store
}

func TestInvite(t *testing.T) {
	f := newFixture()
	svc, store := newReferralService(f)
	ctx := context.Background()

	resp, err := svc.Invite(ctx, clientSession(), &types.InviteReq{Email: " Leo@Mail.com ", Kind: models.ReferralKindUser})
	require.NoError(t, err)
	assert.Equal(t, "leo@mail.com", resp.InviteeEmail)
	assert.Equal(t, models.ReferralPending, resp.Status)
	require.Len(t, store.rows, 1)

	intents := f.recorder.Intents()
	require.Len(t, intents, 1)
	assert.Equal(t, effect.KindEmail, intents[0].Kind)
	assert.Equal(t, "leo@mail.com", intents[0].Email.To)
	assert.True(t, strings.Contains(intents[0].Email.Body, "https://petly.test/register?ref="+resp.Code))

	_, err = svc.Invite(ctx, clientSession(), &types.InviteReq{Email: "ANA@petly.dev", Kind: models.ReferralKindUser})
	var in *InputError
	assert.ErrorAs(t, err, &in)

	_, err = svc.Invite(ctx, clientSession(), &types.InviteReq{Email: "owner@petly.dev", Kind: models.ReferralKindUser})
	assert.ErrorAs(t, err, &in)
}

func TestReferral_UserFlow(t *testing.T) {
	f := newFixture()
	svc, store := newReferralService(f)
	ctx := context.Background()

	inv, err := svc.Invite(ctx, clientSession(), &types.InviteReq{Email: "leo@mail.com", Kind: models.ReferralKindUser})
	require.NoError(t, err)

	leo := &models.Users{Email: "leo@mail.com", Role: models.RoleUser, RewardTier: "bronze"}
	require.NoError(t, f.users.Create(ctx, leo))
	require.NoError(t, svc.AttachOnRegister(ctx, leo, inv.Code))
	assert.Equal(t, models.ReferralRegistered, store.rows[0].Status)

	f.recorder.Reset()
	require.NoError(t, svc.OnFirstAppointment(ctx, leo.ID))
	require.NoError(t, svc.OnFirstAppointment(ctx, leo.ID))

	assert.Equal(t, models.ReferralRewarded, store.rows[0].Status)
	assert.Len(t, f.ledger.granted(loyalty.ReferralUser), 1)
	u, _ := f.users.FindById(ctx, clientID)
	assert.Equal(t, int64(150), u.RewardPoints)
	assert.Len(t, f.recorder.Intents(), 1)
}

func TestReferral_KindMustMatchRole(t *testing.T) {
	f := newFixture()
	svc, store := newReferralService(f)
	ctx := context.Background()

	_, err := svc.Invite(ctx, clientSession(), &types.InviteReq{Email: "shop@mail.com", Kind: models.ReferralKindBusiness})
	require.NoError(t, err)

	// attached by e-mail when no code is given, but only for the matching role
	asUser := &models.Users{ID: 300, Email: "shop@mail.com", Role: models.RoleUser}
	require.NoError(t, svc.AttachOnRegister(ctx, asUser, ""))
	assert.Equal(t, models.ReferralPending, store.rows[0].Status)

	asBusiness := &models.Users{ID: 301, Email: "shop@mail.com", Role: models.RoleBusiness}
	require.NoError(t, svc.AttachOnRegister(ctx, asBusiness, ""))
	assert.Equal(t, models.ReferralRegistered, store.rows[0].Status)

	require.NoError(t, svc.OnFirstAppointment(ctx, 301))
	assert.Empty(t, f.ledger.granted(loyalty.ReferralUser))

	require.NoError(t, svc.OnBusinessCompleted(ctx, 301))
	assert.Len(t, f.ledger.granted(loyalty.ReferralBusiness), 1)
}

func TestAttachOnRegister_UnknownCode(t *testing.T) {
	f := newFixture()
	svc, _ := newReferralService(f)

	err := svc.AttachOnRegister(context.Background(), &models.Users{ID: 5, Email: "x@y.z", Role: models.RoleUser}, "nope")
	assert.NoError(t, err)
}

package service

import (
	"context"
	"testing"
	"time"

	"Petly/internal/appointment"
	"Petly/models"
	"Petly/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBusinessService(f *fixture) *BusinessService {
	return &BusinessService{
		Businesses:  f.businesses,
		Services:    f.services,
		Redeemables: &fakeRedeemables{},
		Reviews:     &fakeReviews{appointments: f.appointments},
		Referral:    f.referral,
		Now:         func() time.Time { return f.now },
	}
}

func TestBusiness_CompletionRunsReferralOnce(t *testing.T) {
	f := newFixture()
	svc := newBusinessService(f)
	ctx := context.Background()
	owner := &types.Session{UserID: 50, Role: models.RoleBusiness}

	created, err := svc.Create(ctx, owner, &types.CreateBusinessReq{Name: "Guau", Phone: "600"})
	require.NoError(t, err)
	assert.False(t, created.Complete)
	assert.Empty(t, f.referral.bizDone)

	upd, err := svc.Update(ctx, owner, created.ID, &types.UpdateBusinessReq{Address: strPtr(" Calle Mayor 3 ")})
	require.NoError(t, err)
	assert.True(t, upd.Complete)
	assert.Equal(t, "Calle Mayor 3", upd.Address)
	assert.Equal(t, []uint64{50}, f.referral.bizDone)

	_, err = svc.Update(ctx, owner, created.ID, &types.UpdateBusinessReq{City: strPtr("Madrid")})
	require.NoError(t, err)
	assert.Len(t, f.referral.bizDone, 1)
}

func TestBusiness_Ownership(t *testing.T) {
	f := newFixture()
	svc := newBusinessService(f)
	ctx := context.Background()

	_, err := svc.Create(ctx, clientSession(), &types.CreateBusinessReq{Name: "Nope"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, clientSession(), businessID, &types.UpdateBusinessReq{Name: strPtr("Mine")})
	assert.ErrorIs(t, err, ErrForbidden)

	admin := &types.Session{UserID: 99, Role: models.RoleAdmin}
	_, err = svc.AddService(ctx, admin, businessID, &types.CreateServiceReq{Name: "Uñas"})
	assert.NoError(t, err)

	_, err = svc.Update(ctx, ownerSession(), businessID, &types.UpdateBusinessReq{Name: strPtr("  ")})
	var in *InputError
	assert.ErrorAs(t, err, &in)
}

func TestBusiness_GetWithServicesAndRating(t *testing.T) {
	f := newFixture()
	svc := newBusinessService(f)
	ctx := context.Background()

	a := f.seed(appointment.Completed, march10, false)
	require.NoError(t, f.appointments.SubmitReview(ctx, &models.Review{AppointmentID: a.ID, BusinessID: businessID, UserID: clientID, Rating: 4}))

	resp, err := svc.Get(ctx, businessID)
	require.NoError(t, err)
	assert.Len(t, resp.Services, 2)
	require.NotNil(t, resp.Rating)
	assert.Equal(t, int64(1), resp.Rating.Count)
	assert.Equal(t, 4.0, resp.Rating.Average)
}

func TestBusiness_Redeemables(t *testing.T) {
	f := newFixture()
	svc := newBusinessService(f)
	ctx := context.Background()

	item, err := svc.CreateRedeemable(ctx, ownerSession(), businessID, &types.CreateRedeemableReq{Title: " Baño -10% ", PointsCost: 80})
	require.NoError(t, err)
	assert.Equal(t, "Baño -10%", item.Title)

	list, err := svc.ListRedeemables(ctx, businessID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteRedeemable(ctx, ownerSession(), businessID, item.ID))
	assert.ErrorIs(t, svc.DeleteRedeemable(ctx, ownerSession(), businessID, item.ID), ErrNotFound)

	list, err = svc.ListRedeemables(ctx, businessID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

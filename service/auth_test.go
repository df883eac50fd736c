package service

import (
	"context"
	"testing"

	"Petly/config"
	"Petly/models"
	"Petly/pkg/jwt"
	"Petly/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*AuthService, *fakeUsers) {
	users := newFakeUsers()
	return &AuthService{
		Config:   &config.Config{Jwt: &config.Jwt{Secret: "test-secret", AccessTTL: 3600}},
		Users:    users,
		Referral: &stubReferral{},
	}, users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users := newAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &types.RegisterReq{Email: " Leo@Mail.com", Password: "supersecret", DisplayName: "Leo", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "leo@mail.com", resp.User.Email)
	assert.Equal(t, models.RoleUser, resp.User.Role)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := jwt.ParseToken([]byte("test-secret"), jwt.TypeAccess, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	stored, _ := users.FindByEmail(ctx, "leo@mail.com")
	assert.NotEqual(t, "supersecret", stored.PasswordHash)

	_, err = svc.Register(ctx, &types.RegisterReq{Email: "leo@mail.com", Password: "another1"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	login, err := svc.Login(ctx, &types.LoginReq{Email: "LEO@mail.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(ctx, &types.LoginReq{Email: "leo@mail.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, &types.LoginReq{Email: "nobody@mail.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_Business(t *testing.T) {
	svc, _ := newAuthService()

	resp, err := svc.Register(context.Background(), &types.RegisterReq{Email: "shop@mail.com", Password: "supersecret", Role: models.RoleBusiness})
	require.NoError(t, err)
	assert.Equal(t, models.RoleBusiness, resp.User.Role)
}

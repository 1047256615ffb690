package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigmarket/backend/internal/domain"
	"github.com/gigmarket/backend/internal/service"
)

func TestRegisterStartsWithUnsetVerification(t *testing.T) {
	f := newFixture(t)

	user, err := f.services.Users.Register(context.Background(), service.RegisterInput{
		Name:     " Eve Employer ",
		Email:    "Eve@Example.com",
		Password: "secret123",
		Role:     domain.RoleEmployer,
	})
	require.NoError(t, err)

	assert.Equal(t, "Eve Employer", user.Name)
	assert.Equal(t, "eve@example.com", user.Email)
	assert.False(t, user.Phone.Valid)
	assert.Equal(t, domain.VerificationStatusUnset, f.record(t, user.ID).Status())
}

func TestRegisterRejectsDuplicatesAndAdminRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	input := service.RegisterInput{Name: "A", Email: "dup@example.com", Password: "secret123", Role: domain.RoleGigWorker}

	_, err := f.services.Users.Register(ctx, input)
	require.NoError(t, err)

	_, err = f.services.Users.Register(ctx, input)
	assert.ErrorIs(t, err, service.ErrUserAlreadyExist)

	input.Email = "root@example.com"
	input.Role = domain.RoleAdmin
	_, err = f.services.Users.Register(ctx, input)
	assert.ErrorIs(t, err, service.ErrRoleNotAllowed)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.services.Users.Register(ctx, service.RegisterInput{Name: "A", Email: "login@example.com", Password: "secret123", Role: domain.RoleGigWorker})
	require.NoError(t, err)

	tokens, err := f.services.Users.Login(ctx, "LOGIN@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	_, err = f.services.Users.Login(ctx, "login@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = f.services.Users.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestRegisterStoresDistinctPasswordHashes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a, err := f.services.Users.Register(ctx, service.RegisterInput{Name: "A", Email: "a@example.com", Password: "secret123", Role: domain.RoleGigWorker})
	require.NoError(t, err)
	b, err := f.services.Users.Register(ctx, service.RegisterInput{Name: "B", Email: "b@example.com", Password: "secret123", Role: domain.RoleEmployer})
	require.NoError(t, err)

	storedA, err := f.repos.Users.GetOneByID(ctx, a.ID)
	require.NoError(t, err)
	storedB, err := f.repos.Users.GetOneByID(ctx, b.ID)
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", storedA.PasswordHash)
	assert.NotEqual(t, storedA.PasswordHash, storedB.PasswordHash)
}

func TestGetProfileVisibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.newWorker(t)
	stranger := f.newWorker(t)
	f.submit(t, owner.ID)

	public, err := f.services.Users.GetProfile(ctx, service.Viewer{ID: stranger.ID, Role: stranger.Role}, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationStatusPending, public.Verification.Status)
	assert.Empty(t, public.Verification.FrontImage)
	assert.Empty(t, public.Verification.BackImage)

	own, err := f.services.Users.GetProfile(ctx, service.Viewer{ID: owner.ID, Role: owner.Role}, owner.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, own.Verification.FrontImage)
	assert.NotEmpty(t, own.Verification.BackImage)

	admin, err := f.services.Users.GetProfile(ctx, service.Viewer{ID: f.admin.ID, Role: domain.RoleAdmin}, owner.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, admin.Verification.FrontImage)
}

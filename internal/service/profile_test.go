package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := uuid.New()

	profile, err := f.profiles.Onboard(ctx, alice, "Alice A.", "a@x.com", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, models.RoleUser, profile.Role)

	_, err = f.profiles.Onboard(ctx, alice, "Other", "o@x.com", "other")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyOnboarded)
}

func TestOnboardUsernameTaken(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.onboard(t, "alice")

	_, err := f.profiles.Onboard(ctx, uuid.New(), "Carol", "c@x.com", "alice")
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
}

func TestOnboardBlankUsername(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.profiles.Onboard(ctx, uuid.New(), "X", "x@x.com", "   ")
	assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
}

func TestCallerProfileAbsentIsNotError(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	profile, err := f.profiles.CallerProfile(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestSaveCallerProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.onboard(t, "alice")

	err := f.profiles.SaveCallerProfile(ctx, alice, models.UserProfile{
		Username:    "alice",
		DisplayName: "Alice Prime",
		Email:       "prime@x.com",
	})
	require.NoError(t, err)

	profile, err := f.profiles.CallerProfile(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Alice Prime", profile.DisplayName)
	assert.Equal(t, "prime@x.com", profile.Email)
}

func TestSaveCallerProfileRejectsUsernameChange(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.onboard(t, "alice")

	err := f.profiles.SaveCallerProfile(ctx, alice, models.UserProfile{
		Username:    "not-alice",
		DisplayName: "Alice",
		Email:       "a@x.com",
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameImmutable)
}

func TestSaveCallerProfileNotOnboarded(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	err := f.profiles.SaveCallerProfile(ctx, uuid.New(), models.UserProfile{DisplayName: "X"})
	assert.ErrorIs(t, err, apperrors.ErrNotOnboarded)
}

func TestRoleDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	// Authenticated but not onboarded: guest.
	role, err := f.profiles.Role(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, models.RoleGuest, role)

	alice := f.onboard(t, "alice")
	role, err = f.profiles.Role(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)
}

func TestAssignRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	admin := f.onboard(t, "root")
	alice := f.onboard(t, "alice")

	// Bootstrap the first admin directly through the service's own
	// store path, then exercise the admin-only operation.
	require.NoError(t, f.profiles.profiles.SetRole(ctx, admin, models.RoleAdmin))

	assert.ErrorIs(t, f.profiles.AssignRole(ctx, alice, admin, models.RoleUser), apperrors.ErrForbidden)

	require.NoError(t, f.profiles.AssignRole(ctx, admin, alice, models.RoleAdmin))
	isAdmin, err := f.profiles.IsAdmin(ctx, alice)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	err = f.profiles.AssignRole(ctx, admin, alice, models.UserRole("owner"))
	assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
}

func TestByUsernameLookup(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.onboard(t, "alice")

	profile, err := f.profiles.ByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, alice, profile.Identity)

	missing, err := f.profiles.ByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

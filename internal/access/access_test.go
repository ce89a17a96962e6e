package access

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuard(t *testing.T) (*Guard, *memory.ProfileStore, *memory.ConnectionStore) {
	t.Helper()
	profiles := memory.NewProfileStore()
	connections := memory.NewConnectionStore()
	return NewGuard(profiles, connections), profiles, connections
}

func onboard(t *testing.T, profiles *memory.ProfileStore, username string, role models.UserRole) uuid.UUID {
	t.Helper()
	identity := uuid.New()
	_, err := profiles.Create(context.Background(), models.UserProfile{
		Identity:  identity,
		Username:  username,
		Role:      role,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return identity
}

func TestRequireProfile(t *testing.T) {
	ctx := context.Background()
	guard, profiles, _ := newGuard(t)
	alice := onboard(t, profiles, "alice", models.RoleUser)

	profile, err := guard.RequireProfile(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)

	_, err = guard.RequireProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotOnboarded)
}

func TestRequireConnection(t *testing.T) {
	ctx := context.Background()
	guard, _, connections := newGuard(t)
	alice, bob := uuid.New(), uuid.New()

	assert.ErrorIs(t, guard.RequireConnection(ctx, alice, bob), apperrors.ErrNotConnected)

	_, err := connections.CreateRequest(ctx, alice, bob, time.Now())
	require.NoError(t, err)
	// A pending request is not a connection yet.
	assert.ErrorIs(t, guard.RequireConnection(ctx, alice, bob), apperrors.ErrNotConnected)

	require.NoError(t, connections.Accept(ctx, alice, bob))
	assert.NoError(t, guard.RequireConnection(ctx, alice, bob))
	assert.NoError(t, guard.RequireConnection(ctx, bob, alice))
}

func TestRequireAdmin(t *testing.T) {
	ctx := context.Background()
	guard, profiles, _ := newGuard(t)
	admin := onboard(t, profiles, "root", models.RoleAdmin)
	user := onboard(t, profiles, "plain", models.RoleUser)

	assert.NoError(t, guard.RequireAdmin(ctx, admin))
	assert.ErrorIs(t, guard.RequireAdmin(ctx, user), apperrors.ErrForbidden)
	// Not onboarded means guest, which is forbidden, not NotOnboarded.
	assert.ErrorIs(t, guard.RequireAdmin(ctx, uuid.New()), apperrors.ErrForbidden)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/events"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequestPreconditions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.onboard(t, "alice")
	bob := f.onboard(t, "bob")

	// Not onboarded callers cannot request.
	err := f.connections.SendRequest(ctx, uuid.New(), alice)
	assert.ErrorIs(t, err, apperrors.ErrNotOnboarded)

	assert.ErrorIs(t, f.connections.SendRequest(ctx, alice, alice), apperrors.ErrSelfRequest)

	require.NoError(t, f.connections.SendRequest(ctx, bob, alice))
	assert.ErrorIs(t, f.connections.SendRequest(ctx, bob, alice), apperrors.ErrDuplicateRequest)
}

func TestRequestAcceptFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.onboard(t, "alice")
	bob := f.onboard(t, "bob")

	require.NoError(t, f.connections.SendRequest(ctx, bob, alice))

	pending, err := f.connections.Pending(ctx, alice)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, bob, pending[0].Requester)

	require.NoError(t, f.connections.Accept(ctx, alice, bob))

	alicePeers, err := f.connections.Connections(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bob}, alicePeers)
	bobPeers, err := f.connections.Connections(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{alice}, bobPeers)

	pending, err = f.connections.Pending(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRejectFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.onboard(t, "alice")
	bob := f.onboard(t, "bob")

	require.NoError(t, f.connections.SendRequest(ctx, bob, alice))
	require.NoError(t, f.connections.Reject(ctx, alice, bob))

	peers, err := f.connections.Connections(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, peers)

	assert.ErrorIs(t, f.connections.Accept(ctx, alice, bob), apperrors.ErrRequestNotFound)
}

func TestMutualRequestsConnect(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.onboard(t, "alice")
	bob := f.onboard(t, "bob")

	require.NoError(t, f.connections.SendRequest(ctx, bob, alice))
	require.NoError(t, f.connections.SendRequest(ctx, alice, bob))

	peers, err := f.connections.Connections(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bob}, peers)
}

func TestRequestEventDelivered(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.onboard(t, "alice")
	bob := f.onboard(t, "bob")

	sub := f.hub.Subscribe(alice)
	defer sub.Close()

	require.NoError(t, f.connections.SendRequest(ctx, bob, alice))

	event := <-sub.C
	assert.Equal(t, events.TypeConnectionRequest, event.Type)
}

func TestRequestEventCarriesStoredTimestamp(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.onboard(t, "alice")
	bob := f.onboard(t, "bob")

	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f.connections.now = func() time.Time { return at }

	sub := f.hub.Subscribe(alice)
	defer sub.Close()

	require.NoError(t, f.connections.SendRequest(ctx, bob, alice))

	event := <-sub.C
	payload, ok := event.Data.(models.ConnectionRequest)
	require.True(t, ok)
	assert.Equal(t, at, payload.Timestamp)

	pending, err := f.connections.Pending(ctx, alice)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, payload.Timestamp, pending[0].Timestamp)
}

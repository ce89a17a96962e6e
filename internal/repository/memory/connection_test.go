package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestAcceptConnects(t *testing.T) {
	ctx := context.Background()
	store := NewConnectionStore()
	bob, alice := uuid.New(), uuid.New()

	mutual, err := store.CreateRequest(ctx, bob, alice, time.Now())
	require.NoError(t, err)
	assert.False(t, mutual)

	pending, err := store.PendingFor(ctx, alice)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, bob, pending[0].Requester)

	require.NoError(t, store.Accept(ctx, bob, alice))

	// Visible from both sides, request consumed.
	for _, pair := range [][2]uuid.UUID{{alice, bob}, {bob, alice}} {
		connected, err := store.Connected(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, connected)
	}
	peers, err := store.ConnectionsOf(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bob}, peers)

	pending, err = store.PendingFor(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRejectLeavesNoConnection(t *testing.T) {
	ctx := context.Background()
	store := NewConnectionStore()
	bob, alice := uuid.New(), uuid.New()

	_, err := store.CreateRequest(ctx, bob, alice, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Reject(ctx, bob, alice))

	connected, err := store.Connected(ctx, bob, alice)
	require.NoError(t, err)
	assert.False(t, connected)

	pending, err := store.PendingFor(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// The rejected request is gone; re-requesting is allowed.
	_, err = store.CreateRequest(ctx, bob, alice, time.Now())
	assert.NoError(t, err)
}

func TestDuplicateAndConnectedRequests(t *testing.T) {
	ctx := context.Background()
	store := NewConnectionStore()
	bob, alice := uuid.New(), uuid.New()

	_, err := store.CreateRequest(ctx, bob, alice, time.Now())
	require.NoError(t, err)

	_, err = store.CreateRequest(ctx, bob, alice, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRequest)

	require.NoError(t, store.Accept(ctx, bob, alice))

	_, err = store.CreateRequest(ctx, bob, alice, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrAlreadyConnected)
	_, err = store.CreateRequest(ctx, alice, bob, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrAlreadyConnected)
}

func TestMirroredRequestsAutoConnect(t *testing.T) {
	ctx := context.Background()
	store := NewConnectionStore()
	bob, alice := uuid.New(), uuid.New()

	_, err := store.CreateRequest(ctx, bob, alice, time.Now())
	require.NoError(t, err)

	mutual, err := store.CreateRequest(ctx, alice, bob, time.Now())
	require.NoError(t, err)
	assert.True(t, mutual)

	connected, err := store.Connected(ctx, bob, alice)
	require.NoError(t, err)
	assert.True(t, connected)

	// Neither side has a dangling request left.
	for _, id := range []uuid.UUID{alice, bob} {
		pending, err := store.PendingFor(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, pending)
	}
}

func TestPendingOrderedOldestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewConnectionStore()
	alice := uuid.New()
	first, second := uuid.New(), uuid.New()

	base := time.Now()
	_, err := store.CreateRequest(ctx, second, alice, base.Add(time.Second))
	require.NoError(t, err)
	_, err = store.CreateRequest(ctx, first, alice, base)
	require.NoError(t, err)

	pending, err := store.PendingFor(ctx, alice)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first, pending[0].Requester)
	assert.Equal(t, second, pending[1].Requester)
}

func TestAcceptUnknownRequest(t *testing.T) {
	ctx := context.Background()
	store := NewConnectionStore()

	assert.ErrorIs(t, store.Accept(ctx, uuid.New(), uuid.New()), apperrors.ErrRequestNotFound)
	assert.ErrorIs(t, store.Reject(ctx, uuid.New(), uuid.New()), apperrors.ErrRequestNotFound)
}

func TestConcurrentAcceptSingleWinner(t *testing.T) {
	ctx := context.Background()
	store := NewConnectionStore()
	bob, alice := uuid.New(), uuid.New()

	_, err := store.CreateRequest(ctx, bob, alice, time.Now())
	require.NoError(t, err)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.Accept(ctx, bob, alice)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
		}
	}
	assert.Equal(t, 1, winners)
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/access"
	"github.com/linkup-social/linkup/internal/events"
	"github.com/linkup-social/linkup/internal/repository/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	profiles    *ProfileService
	connections *ConnectionService
	messages    *MessageService
	calls       *CallService
	hub         *events.Hub
}

func newFixture() *fixture {
	logger := zap.NewNop()
	profileStore := memory.NewProfileStore()
	connectionStore := memory.NewConnectionStore()
	guard := access.NewGuard(profileStore, connectionStore)
	hub := events.NewHub()

	return &fixture{
		profiles:    NewProfileService(profileStore, guard, logger),
		connections: NewConnectionService(connectionStore, guard, hub, logger),
		messages:    NewMessageService(memory.NewMessageStore(), guard, hub, logger),
		calls:       NewCallService(memory.NewCallStore(), guard, hub, logger),
		hub:         hub,
	}
}

func (f *fixture) onboard(t *testing.T, username string) uuid.UUID {
	t.Helper()
	identity := uuid.New()
	_, err := f.profiles.Onboard(context.Background(), identity, username, username+"@x.com", username)
	require.NoError(t, err)
	return identity
}

// connect forms a connection via the request/accept flow.
func (f *fixture) connect(t *testing.T, a, b uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.connections.SendRequest(ctx, a, b))
	require.NoError(t, f.connections.Accept(ctx, b, a))
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/access"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/events"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/repository"
	"go.uber.org/zap"
)

type ConnectionService struct {
	connections repository.ConnectionRepository
	guard       *access.Guard
	hub         *events.Hub
	logger      *zap.Logger
	now         func() time.Time
}

func NewConnectionService(connections repository.ConnectionRepository, guard *access.Guard, hub *events.Hub, logger *zap.Logger) *ConnectionService {
	return &ConnectionService{
		connections: connections,
		guard:       guard,
		hub:         hub,
		logger:      logger,
		now:         time.Now,
	}
}

// SendRequest records caller → target. When target has already asked
// for caller, the two requests collapse into an immediate connection.
func (s *ConnectionService) SendRequest(ctx context.Context, caller, target uuid.UUID) error {
	if _, err := s.guard.RequireProfile(ctx, caller); err != nil {
		return err
	}
	if caller == target {
		return apperrors.ErrSelfRequest
	}

	at := s.now()
	mutual, err := s.connections.CreateRequest(ctx, caller, target, at)
	if err != nil {
		return err
	}

	if mutual {
		s.logger.Info("mutual requests collapsed into connection",
			zap.String("a", caller.String()),
			zap.String("b", target.String()),
		)
		s.hub.Publish(caller, events.TypeConnectionAccepted, map[string]string{"peer": target.String()})
		s.hub.Publish(target, events.TypeConnectionAccepted, map[string]string{"peer": caller.String()})
		return nil
	}
	s.hub.Publish(target, events.TypeConnectionRequest, models.ConnectionRequest{
		Requester: caller,
		Target:    target,
		Timestamp: at,
	})
	return nil
}

// Pending lists requests addressed to caller, oldest first.
func (s *ConnectionService) Pending(ctx context.Context, caller uuid.UUID) ([]models.ConnectionRequest, error) {
	return s.connections.PendingFor(ctx, caller)
}

// Accept consumes the pending request from requester and connects the
// pair.
func (s *ConnectionService) Accept(ctx context.Context, caller, requester uuid.UUID) error {
	if err := s.connections.Accept(ctx, requester, caller); err != nil {
		return err
	}
	s.logger.Info("connection formed",
		zap.String("requester", requester.String()),
		zap.String("target", caller.String()),
	)
	s.hub.Publish(requester, events.TypeConnectionAccepted, map[string]string{"peer": caller.String()})
	return nil
}

// Reject discards the pending request from requester.
func (s *ConnectionService) Reject(ctx context.Context, caller, requester uuid.UUID) error {
	return s.connections.Reject(ctx, requester, caller)
}

// Connections lists every identity connected to caller.
func (s *ConnectionService) Connections(ctx context.Context, caller uuid.UUID) ([]uuid.UUID, error) {
	return s.connections.ConnectionsOf(ctx, caller)
}

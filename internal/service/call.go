package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/access"
	"github.com/linkup-social/linkup/internal/events"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/repository"
	"go.uber.org/zap"
)

type CallService struct {
	calls  repository.CallRepository
	guard  *access.Guard
	hub    *events.Hub
	logger *zap.Logger
}

func NewCallService(calls repository.CallRepository, guard *access.Guard, hub *events.Hub, logger *zap.Logger) *CallService {
	return &CallService{calls: calls, guard: guard, hub: hub, logger: logger}
}

// Initiate rings callee. The store rejects the transition if either
// party already has call state, so a race between two initiations
// settles with exactly one ringing call.
func (s *CallService) Initiate(ctx context.Context, caller, callee uuid.UUID) error {
	if err := s.guard.RequireConnection(ctx, caller, callee); err != nil {
		return err
	}
	if err := s.calls.Initiate(ctx, caller, callee); err != nil {
		return err
	}

	s.logger.Info("call ringing",
		zap.String("caller", caller.String()),
		zap.String("callee", callee.String()),
	)
	s.notify(caller, callee, &models.CallState{IsActive: false, Caller: caller, Callee: callee})
	return nil
}

// Accept flips the ringing call from initiator to active for both
// parties.
func (s *CallService) Accept(ctx context.Context, caller, initiator uuid.UUID) error {
	if err := s.calls.Accept(ctx, initiator, caller); err != nil {
		return err
	}
	s.notify(initiator, caller, &models.CallState{IsActive: true, Caller: initiator, Callee: caller})
	return nil
}

// Decline clears the ringing call from initiator for both parties.
func (s *CallService) Decline(ctx context.Context, caller, initiator uuid.UUID) error {
	if err := s.calls.Decline(ctx, initiator, caller); err != nil {
		return err
	}
	s.notify(initiator, caller, nil)
	return nil
}

// End clears the active call between caller and partner, whichever role
// caller holds in it.
func (s *CallService) End(ctx context.Context, caller, partner uuid.UUID) error {
	if err := s.calls.End(ctx, caller, partner); err != nil {
		return err
	}
	s.logger.Info("call ended",
		zap.String("party", caller.String()),
		zap.String("partner", partner.String()),
	)
	s.notify(caller, partner, nil)
	return nil
}

// State returns the caller's current call record, nil when idle.
func (s *CallService) State(ctx context.Context, caller uuid.UUID) (*models.CallState, error) {
	return s.calls.StateFor(ctx, caller)
}

// notify pushes the new joint state (nil = call over) to both parties.
func (s *CallService) notify(a, b uuid.UUID, state *models.CallState) {
	s.hub.Publish(a, events.TypeCallState, state)
	s.hub.Publish(b, events.TypeCallState, state)
}

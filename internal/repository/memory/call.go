package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/models"
)

// CallStore is the transient joint call-state table. Both participants
// index the same record, and every transition happens under one lock,
// so neither party can observe a half-updated call.
type CallStore struct {
	mu      sync.RWMutex
	byParty map[uuid.UUID]*models.CallState
}

func NewCallStore() *CallStore {
	return &CallStore{byParty: make(map[uuid.UUID]*models.CallState)}
}

func (s *CallStore) Initiate(ctx context.Context, caller, callee uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byParty[caller] != nil || s.byParty[callee] != nil {
		return apperrors.ErrAlreadyInCall
	}

	call := &models.CallState{IsActive: false, Caller: caller, Callee: callee}
	s.byParty[caller] = call
	s.byParty[callee] = call
	return nil
}

func (s *CallStore) Accept(ctx context.Context, initiator, callee uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	call := s.byParty[callee]
	if call == nil || call.IsActive || call.Caller != initiator || call.Callee != callee {
		return apperrors.ErrNoSuchRingingCall
	}
	call.IsActive = true
	return nil
}

func (s *CallStore) Decline(ctx context.Context, initiator, callee uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	call := s.byParty[callee]
	if call == nil || call.IsActive || call.Caller != initiator || call.Callee != callee {
		return apperrors.ErrNoSuchRingingCall
	}
	delete(s.byParty, call.Caller)
	delete(s.byParty, call.Callee)
	return nil
}

func (s *CallStore) End(ctx context.Context, party, partner uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	call := s.byParty[party]
	if call == nil || !call.IsActive || call.Other(party) != partner {
		return apperrors.ErrNoActiveCall
	}
	delete(s.byParty, call.Caller)
	delete(s.byParty, call.Callee)
	return nil
}

func (s *CallStore) StateFor(ctx context.Context, identity uuid.UUID) (*models.CallState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	call := s.byParty[identity]
	if call == nil {
		return nil, nil
	}
	snapshot := *call
	return &snapshot, nil
}

// Package memory holds mutex-guarded in-memory store implementations.
// They are the default backend (STORE=memory) and the substrate for the
// service tests. Each store serializes its writes behind one lock, so
// every invariant the interfaces promise to check atomically is checked
// inside a single critical section.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/models"
)

type ProfileStore struct {
	mu         sync.RWMutex
	byIdentity map[uuid.UUID]models.UserProfile
	byUsername map[string]uuid.UUID
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		byIdentity: make(map[uuid.UUID]models.UserProfile),
		byUsername: make(map[string]uuid.UUID),
	}
}

func (s *ProfileStore) Create(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byIdentity[profile.Identity]; ok {
		return nil, apperrors.ErrAlreadyOnboarded
	}
	if _, ok := s.byUsername[profile.Username]; ok {
		return nil, apperrors.ErrUsernameTaken
	}

	s.byIdentity[profile.Identity] = profile
	s.byUsername[profile.Username] = profile.Identity
	return &profile, nil
}

func (s *ProfileStore) Get(ctx context.Context, identity uuid.UUID) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byIdentity[identity]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *ProfileStore) GetByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.byUsername[username]
	if !ok {
		return nil, nil
	}
	p := s.byIdentity[identity]
	return &p, nil
}

func (s *ProfileStore) Update(ctx context.Context, identity uuid.UUID, displayName, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byIdentity[identity]
	if !ok {
		return apperrors.ErrNotOnboarded
	}
	p.DisplayName = displayName
	p.Email = email
	s.byIdentity[identity] = p
	return nil
}

func (s *ProfileStore) SetRole(ctx context.Context, target uuid.UUID, role models.UserRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byIdentity[target]
	if !ok {
		return apperrors.ErrNotOnboarded
	}
	p.Role = role
	s.byIdentity[target] = p
	return nil
}

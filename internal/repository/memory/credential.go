package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/models"
)

type CredentialStore struct {
	mu      sync.RWMutex
	byEmail map[string]models.Credential
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{byEmail: make(map[string]models.Credential)}
}

func (s *CredentialStore) Create(ctx context.Context, email, passwordHash string) (*models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return nil, apperrors.ErrEmailRegistered
	}

	cred := models.Credential{
		Identity:     uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.byEmail[email] = cred
	return &cred, nil
}

func (s *CredentialStore) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &cred, nil
}

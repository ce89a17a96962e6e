// Package service implements the operations behind the RPC façade.
// Handlers stay thin: every invariant and precondition lives here or in
// the stores, with the access.Guard doing the cross-cutting checks.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/access"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/repository"
	"go.uber.org/zap"
)

type ProfileService struct {
	profiles repository.ProfileRepository
	guard    *access.Guard
	logger   *zap.Logger
	now      func() time.Time
}

func NewProfileService(profiles repository.ProfileRepository, guard *access.Guard, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		guard:    guard,
		logger:   logger,
		now:      time.Now,
	}
}

// Onboard creates the caller's profile exactly once. The store performs
// the already-onboarded and username-uniqueness checks atomically with
// the insert.
func (s *ProfileService) Onboard(ctx context.Context, caller uuid.UUID, displayName, email, username string) (*models.UserProfile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperrors.InvalidArg("username is required")
	}

	profile, err := s.profiles.Create(ctx, models.UserProfile{
		Identity:    caller,
		Username:    username,
		DisplayName: displayName,
		Email:       email,
		Role:        models.RoleUser,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user onboarded",
		zap.String("identity", caller.String()),
		zap.String("username", username),
	)
	return profile, nil
}

// CallerProfile returns the caller's own profile, or nil when not yet
// onboarded. The client routes to onboarding on that absence, so it is
// a result, not an error.
func (s *ProfileService) CallerProfile(ctx context.Context, caller uuid.UUID) (*models.UserProfile, error) {
	return s.profiles.Get(ctx, caller)
}

// SaveCallerProfile overwrites display name and email. A changed
// username is rejected rather than ignored.
func (s *ProfileService) SaveCallerProfile(ctx context.Context, caller uuid.UUID, incoming models.UserProfile) error {
	current, err := s.guard.RequireProfile(ctx, caller)
	if err != nil {
		return err
	}
	if incoming.Username != "" && incoming.Username != current.Username {
		return apperrors.ErrUsernameImmutable
	}
	return s.profiles.Update(ctx, caller, incoming.DisplayName, incoming.Email)
}

// Profile resolves any identity's profile; no connection requirement,
// the client uses it to render requesters and connections.
func (s *ProfileService) Profile(ctx context.Context, identity uuid.UUID) (*models.UserProfile, error) {
	return s.profiles.Get(ctx, identity)
}

// ByUsername is the exact-match discovery lookup.
func (s *ProfileService) ByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	return s.profiles.GetByUsername(ctx, username)
}

// Role reports the caller's role; authenticated callers without a
// profile are guests.
func (s *ProfileService) Role(ctx context.Context, caller uuid.UUID) (models.UserRole, error) {
	profile, err := s.profiles.Get(ctx, caller)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return models.RoleGuest, nil
	}
	return profile.Role, nil
}

// AssignRole reassigns target's role. Admin only.
func (s *ProfileService) AssignRole(ctx context.Context, caller, target uuid.UUID, role models.UserRole) error {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return err
	}
	if !role.Valid() {
		return apperrors.InvalidArg("unknown role")
	}
	if err := s.profiles.SetRole(ctx, target, role); err != nil {
		return err
	}
	s.logger.Info("role assigned",
		zap.String("by", caller.String()),
		zap.String("target", target.String()),
		zap.String("role", string(role)),
	)
	return nil
}

// IsAdmin is the convenience predicate behind the admin UI toggle.
func (s *ProfileService) IsAdmin(ctx context.Context, caller uuid.UUID) (bool, error) {
	role, err := s.Role(ctx, caller)
	if err != nil {
		return false, err
	}
	return role == models.RoleAdmin, nil
}

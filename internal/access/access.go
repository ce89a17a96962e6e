// Package access is the cross-cutting precondition layer: "requires
// profile", "requires connection", and "admin only" checks go through a
// Guard instead of being duplicated inline in each service method.
// Caller-identity resolution itself happens earlier, in the HTTP
// middleware.
package access

import (
	"context"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/repository"
)

type Guard struct {
	profiles    repository.ProfileRepository
	connections repository.ConnectionRepository
}

func NewGuard(profiles repository.ProfileRepository, connections repository.ConnectionRepository) *Guard {
	return &Guard{profiles: profiles, connections: connections}
}

// RequireProfile returns the caller's profile, or ErrNotOnboarded.
func (g *Guard) RequireProfile(ctx context.Context, caller uuid.UUID) (*models.UserProfile, error) {
	profile, err := g.profiles.Get(ctx, caller)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.ErrNotOnboarded
	}
	return profile, nil
}

// RequireConnection fails with ErrNotConnected unless caller and other
// hold a connection.
func (g *Guard) RequireConnection(ctx context.Context, caller, other uuid.UUID) error {
	connected, err := g.connections.Connected(ctx, caller, other)
	if err != nil {
		return err
	}
	if !connected {
		return apperrors.ErrNotConnected
	}
	return nil
}

// RequireAdmin fails with ErrForbidden unless the caller is an onboarded
// admin. Not-onboarded callers hold the guest role, so they are
// forbidden, not redirected to onboarding.
func (g *Guard) RequireAdmin(ctx context.Context, caller uuid.UUID) error {
	profile, err := g.profiles.Get(ctx, caller)
	if err != nil {
		return err
	}
	if profile == nil || profile.Role != models.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

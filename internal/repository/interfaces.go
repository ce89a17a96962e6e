package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/models"
)

// Stores return the apperrors sentinels for every failure they can
// detect atomically (uniqueness, missing rows, state conflicts) so the
// invariant checks happen inside the store's critical section, not in a
// racy read-then-write at the service layer. Lookups that can come back
// empty return (nil, nil): absence is a result, not an error.

// ProfileRepository owns the identity → profile table and the unique
// username index. Creation and the uniqueness check are one atomic step.
type ProfileRepository interface {
	// Create inserts a profile for identity. Fails with ErrAlreadyOnboarded
	// if identity has one, ErrUsernameTaken on a username collision.
	Create(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error)

	// Get returns the profile for identity, or nil if not onboarded.
	Get(ctx context.Context, identity uuid.UUID) (*models.UserProfile, error)

	// GetByUsername is an exact-match lookup, nil if no such username.
	GetByUsername(ctx context.Context, username string) (*models.UserProfile, error)

	// Update overwrites display name and email. Username and role are
	// untouched. Fails with ErrNotOnboarded if no profile exists.
	Update(ctx context.Context, identity uuid.UUID, displayName, email string) error

	// SetRole reassigns the role. Fails with ErrNotOnboarded if no
	// profile exists for target.
	SetRole(ctx context.Context, target uuid.UUID, role models.UserRole) error
}

// ConnectionRepository owns both pending requests and formed
// connections; keeping them in one store lets it enforce "pending and
// connected are mutually exclusive for a pair" at write time.
type ConnectionRepository interface {
	// CreateRequest records requester → target. Fails with
	// ErrAlreadyConnected or ErrDuplicateRequest. If a mirrored pending
	// request (target → requester) exists, it is consumed and the pair
	// connected instead; mutual reports which path was taken.
	CreateRequest(ctx context.Context, requester, target uuid.UUID, at time.Time) (mutual bool, err error)

	// PendingFor lists requests where target is the recipient, oldest
	// first.
	PendingFor(ctx context.Context, target uuid.UUID) ([]models.ConnectionRequest, error)

	// Accept atomically removes the pending request and connects the
	// pair. Fails with ErrRequestNotFound.
	Accept(ctx context.Context, requester, target uuid.UUID) error

	// Reject removes the pending request without connecting. Fails with
	// ErrRequestNotFound.
	Reject(ctx context.Context, requester, target uuid.UUID) error

	// ConnectionsOf returns every identity connected to identity.
	ConnectionsOf(ctx context.Context, identity uuid.UUID) ([]uuid.UUID, error)

	// Connected reports whether a and b hold a connection.
	Connected(ctx context.Context, a, b uuid.UUID) (bool, error)
}

// MessageRepository owns the per-conversation append-only logs, keyed by
// the unordered identity pair.
type MessageRepository interface {
	// Append adds a message from sender to the (sender, recipient)
	// conversation and returns it with Seq populated.
	Append(ctx context.Context, sender, recipient uuid.UUID, content string, at time.Time) (*models.Message, error)

	// List returns the conversation log oldest first. before > 0
	// restricts to messages with Seq < before; limit > 0 caps the result
	// to the newest limit entries of that window. Zero values mean the
	// full log.
	List(ctx context.Context, a, b uuid.UUID, before int64, limit int) ([]models.Message, error)
}

// CallRepository owns the transient joint call-state table. Every
// mutation updates both parties' view as one atomic step.
type CallRepository interface {
	// Initiate puts caller and callee into a ringing call. Fails with
	// ErrAlreadyInCall if either party has any call state.
	Initiate(ctx context.Context, caller, callee uuid.UUID) error

	// Accept flips the ringing call from initiator to callee to active.
	// Fails with ErrNoSuchRingingCall.
	Accept(ctx context.Context, initiator, callee uuid.UUID) error

	// Decline clears the ringing call from initiator to callee. Fails
	// with ErrNoSuchRingingCall.
	Decline(ctx context.Context, initiator, callee uuid.UUID) error

	// End clears the active call between party and partner, whichever
	// role each holds. Fails with ErrNoActiveCall.
	End(ctx context.Context, party, partner uuid.UUID) error

	// StateFor returns the call record identity participates in, nil if
	// none.
	StateFor(ctx context.Context, identity uuid.UUID) (*models.CallState, error)
}

// CredentialRepository backs the built-in identity provider.
type CredentialRepository interface {
	// Create registers an email + password hash and mints the identity.
	// Fails with ErrEmailRegistered.
	Create(ctx context.Context, email, passwordHash string) (*models.Credential, error)

	// GetByEmail returns the credential for email, nil if unregistered.
	GetByEmail(ctx context.Context, email string) (*models.Credential, error)
}

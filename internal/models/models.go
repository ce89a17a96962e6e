package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is the authorization level attached to an identity.
// Newly onboarded users get RoleUser; RoleGuest is reported for
// authenticated callers who have not onboarded yet.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
	RoleGuest UserRole = "guest"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// UserProfile is the public record for an onboarded identity.
//
// Username is globally unique and immutable once set; it doubles as a
// routable handle for discovery. DisplayName and Email are owner-mutable.
type UserProfile struct {
	Identity    uuid.UUID `json:"identity"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	Role        UserRole  `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ConnectionRequest is a directed, pending edge in the connection graph.
// It is consumed (never retained) on accept or reject.
type ConnectionRequest struct {
	Requester uuid.UUID `json:"requester"`
	Target    uuid.UUID `json:"target"`
	Timestamp time.Time `json:"timestamp"`
}

// Message is one entry in a conversation's append-only log.
//
// Seq is assigned by the store and is strictly increasing within a
// conversation, so clients can order messages even when two land on the
// same timestamp.
type Message struct {
	Seq       int64     `json:"seq"`
	Sender    uuid.UUID `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// CallState is the joint signaling record for a call between two
// connected identities. IsActive is false while the call is ringing and
// true once the callee accepts. Both parties observe the same record.
type CallState struct {
	IsActive bool      `json:"isActive"`
	Caller   uuid.UUID `json:"caller"`
	Callee   uuid.UUID `json:"callee"`
}

// Other returns the counterpart of identity in the call, or uuid.Nil if
// identity is not a participant.
func (c CallState) Other(identity uuid.UUID) uuid.UUID {
	switch identity {
	case c.Caller:
		return c.Callee
	case c.Callee:
		return c.Caller
	}
	return uuid.Nil
}

// Credential is a login record for the built-in identity provider.
// Registering creates an identity only; onboarding is a separate step.
type Credential struct {
	Identity     uuid.UUID `json:"identity"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

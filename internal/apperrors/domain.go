package apperrors

// Sentinels for every failure the RPC surface can return. Services
// return these directly; repositories return the subset they can detect
// atomically (uniqueness, missing rows).
var (
	// Identity & profile.
	ErrUnauthenticated   = New(CodeUnauthenticated, "no caller identity")
	ErrNotOnboarded      = New(CodeFailedPrecondition, "caller has no profile")
	ErrAlreadyOnboarded  = New(CodeAlreadyExists, "caller already has a profile")
	ErrUsernameTaken     = New(CodeAlreadyExists, "username is already taken")
	ErrUsernameImmutable = New(CodeInvalidArgument, "username cannot be changed")
	ErrForbidden         = New(CodePermissionDenied, "admin role required")

	// Connection graph.
	ErrSelfRequest      = New(CodeInvalidArgument, "cannot send a connection request to yourself")
	ErrAlreadyConnected = New(CodeAlreadyExists, "users are already connected")
	ErrDuplicateRequest = New(CodeAlreadyExists, "an identical request is already pending")
	ErrRequestNotFound  = New(CodeNotFound, "no such pending request")

	// Messaging.
	ErrNotConnected = New(CodeFailedPrecondition, "users are not connected")
	ErrEmptyContent = New(CodeInvalidArgument, "message content is empty")

	// Call signaling.
	ErrAlreadyInCall     = New(CodeAlreadyExists, "a party is already in a call")
	ErrNoSuchRingingCall = New(CodeNotFound, "no such ringing call")
	ErrNoActiveCall      = New(CodeNotFound, "no active call with that partner")

	// Built-in identity provider.
	ErrEmailRegistered    = New(CodeAlreadyExists, "email is already registered")
	ErrInvalidCredentials = New(CodeUnauthenticated, "invalid email or password")
)

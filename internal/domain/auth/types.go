package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Identity represents the authenticated principal returned by the identity
// provider. Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string // stable user identifier (provider subject)
	Email     string
	ExpiresAt time.Time // absolute expiry from the provider token
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier. The bearer token is deliberately NOT
// stored here: it is re-minted from the provider on each request.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active reports whether the session has not yet expired at the given time.
func (s Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// SessionEventKind classifies provider-side session-change notifications.
type SessionEventKind string

const (
	// SessionSignedOut indicates the provider reports the user signed out.
	SessionSignedOut SessionEventKind = "signed_out"
	// SessionExpired indicates the provider reports the credential expired.
	SessionExpired SessionEventKind = "expired"
)

// SessionEvent is a provider-side session-change notification.
type SessionEvent struct {
	Kind   SessionEventKind
	UserID string
}

package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/prodcat/catalog-admin/internal/domain/auth"
)

// AuthProvider authenticates users against an external identity provider and
// mints short-lived bearer tokens for them.
type AuthProvider interface {
	// SignIn authenticates the given email/password pair and returns the
	// provider identity. Failures carry a human-readable message.
	SignIn(ctx context.Context, email, password string) (domainauth.Identity, error)

	// MintToken returns a currently-valid bearer token for the user,
	// refreshing with the provider as needed. The token is never cached by
	// callers; each call yields a fresh credential.
	MintToken(ctx context.Context, userID string) (string, error)

	// SignOut invalidates the provider-side credentials for the user.
	SignOut(ctx context.Context, userID string) error
}

// SessionEventSource is implemented by providers that push session-change
// notifications (sign-out, expiry). The channel is owned by the provider and
// closed when the provider shuts down.
type SessionEventSource interface {
	Events() <-chan domainauth.SessionEvent
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUser removes all sessions belonging to the given user. Used
	// when the provider reports a session-change event.
	DeleteByUser(ctx context.Context, userID string) error
}

package devauth

// Package devauth provides a simple, config-driven AuthProvider for local
// development. It accepts the configured email with any non-empty password
// and mints opaque random tokens without contacting a real provider.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/prodcat/catalog-admin/internal/domain/auth"
	apperrors "github.com/prodcat/catalog-admin/internal/errors"
)

// Config controls the dev auth provider behavior.
type Config struct {
	UserID          string
	Email           string
	SessionDuration time.Duration // default 8h when zero
}

// Provider implements ports.AuthProvider for local development.
type Provider struct {
	identity        domainauth.Identity
	sessionDuration time.Duration

	mu       sync.Mutex
	signedIn bool

	events chan domainauth.SessionEvent
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	return &Provider{
		identity: domainauth.Identity{
			UserID: cfg.UserID,
			Email:  cfg.Email,
		},
		sessionDuration: dur,
		events:          make(chan domainauth.SessionEvent, 16),
	}, nil
}

// SignIn accepts the configured email with any non-empty password.
func (p *Provider) SignIn(_ context.Context, email, password string) (domainauth.Identity, error) {
	if email != p.identity.Email || password == "" {
		return domainauth.Identity{}, apperrors.Auth("invalid email or password")
	}

	p.mu.Lock()
	p.signedIn = true
	p.mu.Unlock()

	id := p.identity
	id.ExpiresAt = time.Now().Add(p.sessionDuration)
	return id, nil
}

// MintToken returns a fresh opaque token for the signed-in dev user.
func (p *Provider) MintToken(_ context.Context, userID string) (string, error) {
	p.mu.Lock()
	signedIn := p.signedIn
	p.mu.Unlock()
	if !signedIn || userID != p.identity.UserID {
		return "", apperrors.Auth("no active provider session")
	}

	suffix, err := randomString(24)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return "dev-" + suffix, nil
}

// SignOut clears the dev session and notifies watchers.
func (p *Provider) SignOut(_ context.Context, userID string) error {
	p.mu.Lock()
	p.signedIn = false
	p.mu.Unlock()

	select {
	case p.events <- domainauth.SessionEvent{Kind: domainauth.SessionSignedOut, UserID: userID}:
	default:
	}
	return nil
}

// Events returns the provider's session-change notification channel.
func (p *Provider) Events() <-chan domainauth.SessionEvent {
	return p.events
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	// Compute number of random bytes needed to produce at least n base64 URL chars
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < n {
		// pad
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:n], nil
}

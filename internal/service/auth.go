package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/prodcat/catalog-admin/internal/domain/auth"
	apperrors "github.com/prodcat/catalog-admin/internal/errors"
	"github.com/prodcat/catalog-admin/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider   ports.AuthProvider
	Sessions   ports.SessionStore
	SessionTTL time.Duration // fallback when the provider reports no expiry
	Logger     *slog.Logger
}

// AuthService orchestrates the session lifecycle: provider sign-in/sign-out,
// server-side session persistence, and on-demand bearer-token minting.
type AuthService struct {
	provider   ports.AuthProvider
	sessions   ports.SessionStore
	sessionTTL time.Duration
	logger     *slog.Logger
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		provider:   opts.Provider,
		sessions:   opts.Sessions,
		sessionTTL: ttl,
		logger:     logger,
	}
}

// Login authenticates the email/password pair against the identity provider
// and persists a new server-side session. Provider failure surfaces an auth
// error and leaves existing session state untouched.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domainauth.Session, error) {
	if email == "" {
		return nil, apperrors.Validation("email is required")
	}
	if password == "" {
		return nil, apperrors.Validation("password is required")
	}

	identity, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	expiresAt := identity.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(s.sessionTTL)
	}

	session := domainauth.Session{
		ID:        uuid.New().String(),
		UserID:    identity.UserID,
		Email:     identity.Email,
		ExpiresAt: expiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &session, nil
}

// Logout removes the local session and signs out at the provider. The local
// session is cleared even when the provider call fails; the provider error is
// still reported to the caller.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	session, getErr := s.sessions.Get(ctx, sessionID)

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if getErr != nil {
		// Session was already gone; nothing to sign out upstream.
		return nil
	}

	if err := s.provider.SignOut(ctx, session.UserID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeAuth, "provider sign out")
	}
	return nil
}

// GetSession retrieves a session by ID, treating expired sessions as absent.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if !session.Active(time.Now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Token requests a fresh bearer token from the provider for the session's
// user. It never fails the caller: no active session, an expired session, or
// a provider refresh failure all degrade to an empty token (unauthenticated).
func (s *AuthService) Token(ctx context.Context, sessionID string) string {
	if sessionID == "" {
		return ""
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return ""
	}

	token, err := s.provider.MintToken(ctx, session.UserID)
	if err != nil {
		s.logger.DebugContext(ctx, "token mint failed", "user_id", session.UserID, "error", err)
		return ""
	}
	return token
}

// Watch subscribes to the provider's session-change notifications for the
// lifetime of ctx, clearing local sessions the provider reports signed-out or
// expired. It is a no-op for providers without an event source. Call once at
// process start.
func (s *AuthService) Watch(ctx context.Context) {
	src, ok := s.provider.(ports.SessionEventSource)
	if !ok {
		return
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, open := <-src.Events():
				if !open {
					return
				}
				if err := s.sessions.DeleteByUser(ctx, ev.UserID); err != nil {
					s.logger.WarnContext(ctx, "clear sessions for provider event failed",
						"user_id", ev.UserID, "kind", ev.Kind, "error", err)
				}
			}
		}
	}()
}

package idp

// Package idp provides the production AuthProvider backed by an OAuth2/OIDC
// identity provider. Sign-in uses the resource-owner-password grant (the
// dashboard collects email + password directly); token minting delegates to
// oauth2.TokenSource so refresh happens silently.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/prodcat/catalog-admin/internal/domain/auth"
	apperrors "github.com/prodcat/catalog-admin/internal/errors"
)

// Provider implements ports.AuthProvider using OAuth2/OIDC.
type Provider struct {
	config     *oauth2.Config
	httpClient *http.Client

	// go-oidc provider and verifier
	oidcProvider *gooidc.Provider
	verifier     *gooidc.IDTokenVerifier

	mu      sync.Mutex
	sources map[string]oauth2.TokenSource

	events chan domainauth.SessionEvent
}

// ProviderConfig holds configuration for the identity provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	Scope        string
	DiscoveryURL string
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

// NewProvider creates a new identity provider adapter.
func NewProvider(config ProviderConfig) (*Provider, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if config.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if config.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	p := &Provider{
		httpClient: httpClient,
		sources:    make(map[string]oauth2.TokenSource),
		events:     make(chan domainauth.SessionEvent, 16),
	}

	// Initialize go-oidc provider and verifier (single discovery fetch)
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(config.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}
	p.oidcProvider = op
	p.verifier = op.Verifier(&gooidc.Config{ClientID: config.ClientID})

	p.config = &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Scopes:       strings.Fields(config.Scope),
		Endpoint:     op.Endpoint(),
	}

	return p, nil
}

// SignIn authenticates the email/password pair via the password grant and
// returns the verified identity.
func (p *Provider) SignIn(ctx context.Context, email, password string) (domainauth.Identity, error) {
	if email == "" || password == "" {
		return domainauth.Identity{}, apperrors.Auth("email and password are required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.config.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeAuth, "sign in failed")
	}

	identity, err := p.identityFromToken(ctx, token, email)
	if err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeAuth, "verify identity")
	}

	// Keep a refreshing token source for this user. Minting reuses the
	// current token until expiry, then refreshes against the provider.
	src := p.config.TokenSource(context.WithValue(context.Background(), oauth2.HTTPClient, p.httpClient), token)
	p.mu.Lock()
	p.sources[identity.UserID] = oauth2.ReuseTokenSource(token, src)
	p.mu.Unlock()

	return identity, nil
}

// MintToken returns a currently-valid bearer token for the user, refreshing
// with the provider when the cached token has expired.
func (p *Provider) MintToken(_ context.Context, userID string) (string, error) {
	p.mu.Lock()
	src, ok := p.sources[userID]
	p.mu.Unlock()
	if !ok {
		return "", apperrors.Auth("no active provider session")
	}

	tok, err := src.Token()
	if err != nil {
		// Refresh failed: the provider-side session is gone. Notify
		// watchers so local sessions get cleared.
		p.notify(domainauth.SessionEvent{Kind: domainauth.SessionExpired, UserID: userID})
		return "", apperrors.Wrap(err, apperrors.ErrCodeAuth, "mint token")
	}
	return tok.AccessToken, nil
}

// SignOut drops the user's token source and notifies watchers.
func (p *Provider) SignOut(_ context.Context, userID string) error {
	p.mu.Lock()
	delete(p.sources, userID)
	p.mu.Unlock()

	p.notify(domainauth.SessionEvent{Kind: domainauth.SessionSignedOut, UserID: userID})
	return nil
}

// Events returns the provider's session-change notification channel.
func (p *Provider) Events() <-chan domainauth.SessionEvent {
	return p.events
}

// notify pushes an event without blocking; a slow consumer drops events
// rather than stalling auth operations.
func (p *Provider) notify(ev domainauth.SessionEvent) {
	select {
	case p.events <- ev:
	default:
	}
}

// idTokenClaims is the subset of ID-token claims we consume.
type idTokenClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

// identityFromToken derives the identity from the token response, preferring
// a verified ID token when the openid scope is configured.
func (p *Provider) identityFromToken(
	ctx context.Context,
	token *oauth2.Token,
	fallbackEmail string,
) (domainauth.Identity, error) {
	expiresAt := time.Now().Add(time.Hour)
	if !token.Expiry.IsZero() {
		expiresAt = token.Expiry
	}

	identity := domainauth.Identity{Email: fallbackEmail, ExpiresAt: expiresAt}

	if !p.hasOpenIDScope() {
		identity.UserID = fallbackEmail
		return identity, nil
	}

	rawID, ok := token.Extra("id_token").(string)
	if !ok || rawID == "" {
		return domainauth.Identity{}, errors.New("missing id_token in token response")
	}
	idTok, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("verify id_token: %w", err)
	}
	var claims idTokenClaims
	if claimsErr := idTok.Claims(&claims); claimsErr != nil {
		return domainauth.Identity{}, fmt.Errorf("parse id_token claims: %w", claimsErr)
	}

	identity.UserID = firstNonEmpty(claims.Sub, claims.Email, fallbackEmail)
	if claims.Email != "" {
		identity.Email = claims.Email
	}
	return identity, nil
}

// hasOpenIDScope reports whether the configured scopes include "openid".
func (p *Provider) hasOpenIDScope() bool {
	for _, sc := range p.config.Scopes {
		if sc == "openid" {
			return true
		}
	}
	return false
}

// firstNonEmpty returns the first non-empty string from vals, or empty string if none.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

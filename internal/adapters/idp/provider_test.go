package idp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/prodcat/catalog-admin/internal/domain/auth"
	apperrors "github.com/prodcat/catalog-admin/internal/errors"
)

// newFakeIdP starts an httptest server exposing OIDC discovery and a password
// grant token endpoint. The issuer is the server's own URL.
func newFakeIdP(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, _ *http.Request) {
		doc := map[string]string{
			"issuer":                 server.URL,
			"authorization_endpoint": server.URL + "/auth",
			"token_endpoint":         server.URL + "/token",
			"userinfo_endpoint":      server.URL + "/userinfo",
			"jwks_uri":               server.URL + "/jwks",
		}
		_ = json.NewEncoder(w).Encode(doc)
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("grant_type") != "password" || r.PostForm.Get("password") != "hunter2" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"wrong credentials"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-abc","token_type":"bearer","expires_in":3600}`))
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	idp := newFakeIdP(t)
	// Scope deliberately omits "openid": the fake IdP issues no ID token,
	// so identity falls back to the sign-in email.
	p, err := NewProvider(ProviderConfig{
		ClientID:     "catalog-admin",
		ClientSecret: "secret",
		Scope:        "profile email",
		DiscoveryURL: idp.URL,
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		config ProviderConfig
		errMsg string
	}{
		{
			name:   "missing client ID",
			config: ProviderConfig{ClientSecret: "secret", DiscoveryURL: "http://example.com"},
			errMsg: "client ID is required",
		},
		{
			name:   "missing client secret",
			config: ProviderConfig{ClientID: "client", DiscoveryURL: "http://example.com"},
			errMsg: "client secret is required",
		},
		{
			name:   "missing discovery URL",
			config: ProviderConfig{ClientID: "client", ClientSecret: "secret"},
			errMsg: "discovery URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(tt.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewProvider_Discovery(t *testing.T) {
	idp := newFakeIdP(t)
	p, err := NewProvider(ProviderConfig{
		ClientID:     "catalog-admin",
		ClientSecret: "secret",
		Scope:        "openid profile email",
		DiscoveryURL: idp.URL,
	})
	require.NoError(t, err)
	assert.Equal(t, idp.URL+"/token", p.config.Endpoint.TokenURL)
	assert.Equal(t, idp.URL+"/auth", p.config.Endpoint.AuthURL)
}

func TestProvider_SignIn_Success(t *testing.T) {
	p := newTestProvider(t)

	identity, err := p.SignIn(context.Background(), "admin@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", identity.UserID)
	assert.Equal(t, "admin@example.com", identity.Email)
	assert.False(t, identity.ExpiresAt.IsZero())
}

func TestProvider_SignIn_BadCredentials(t *testing.T) {
	p := newTestProvider(t)

	_, err := p.SignIn(context.Background(), "admin@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err), "expected auth error, got %v", err)
}

func TestProvider_SignIn_MissingInput(t *testing.T) {
	p := newTestProvider(t)

	_, err := p.SignIn(context.Background(), "", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err))
}

func TestProvider_MintToken(t *testing.T) {
	p := newTestProvider(t)

	identity, err := p.SignIn(context.Background(), "admin@example.com", "hunter2")
	require.NoError(t, err)

	tok, err := p.MintToken(context.Background(), identity.UserID)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", tok)

	// Unknown user: no provider session
	_, err = p.MintToken(context.Background(), "ghost@example.com")
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err))
}

func TestProvider_SignOut_EmitsEvent(t *testing.T) {
	p := newTestProvider(t)

	identity, err := p.SignIn(context.Background(), "admin@example.com", "hunter2")
	require.NoError(t, err)

	require.NoError(t, p.SignOut(context.Background(), identity.UserID))

	select {
	case ev := <-p.Events():
		assert.Equal(t, domainauth.SessionSignedOut, ev.Kind)
		assert.Equal(t, identity.UserID, ev.UserID)
	default:
		t.Fatal("expected a session event after sign out")
	}

	// Token source is gone after sign out
	_, err = p.MintToken(context.Background(), identity.UserID)
	require.Error(t, err)
}

package devauth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/prodcat/catalog-admin/internal/domain/auth"
	apperrors "github.com/prodcat/catalog-admin/internal/errors"
)

func newProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewProvider(Config{UserID: "dev-user", Email: "dev@example.com"})
	require.NoError(t, err)
	return p
}

func TestNewProvider_RequiresIdentity(t *testing.T) {
	_, err := NewProvider(Config{Email: "dev@example.com"})
	require.Error(t, err)

	_, err = NewProvider(Config{UserID: "dev-user"})
	require.Error(t, err)
}

func TestSignIn(t *testing.T) {
	p := newProvider(t)

	id, err := p.SignIn(context.Background(), "dev@example.com", "anything")
	require.NoError(t, err)
	assert.Equal(t, "dev-user", id.UserID)
	assert.False(t, id.ExpiresAt.IsZero())

	_, err = p.SignIn(context.Background(), "other@example.com", "anything")
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err))

	_, err = p.SignIn(context.Background(), "dev@example.com", "")
	require.Error(t, err)
}

func TestMintToken(t *testing.T) {
	p := newProvider(t)

	// Not signed in yet
	_, err := p.MintToken(context.Background(), "dev-user")
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err))

	_, err = p.SignIn(context.Background(), "dev@example.com", "pw")
	require.NoError(t, err)

	tok1, err := p.MintToken(context.Background(), "dev-user")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tok1, "dev-"))

	// Each mint yields a fresh token
	tok2, err := p.MintToken(context.Background(), "dev-user")
	require.NoError(t, err)
	assert.NotEqual(t, tok1, tok2)
}

func TestSignOut(t *testing.T) {
	p := newProvider(t)
	_, err := p.SignIn(context.Background(), "dev@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, p.SignOut(context.Background(), "dev-user"))

	select {
	case ev := <-p.Events():
		assert.Equal(t, domainauth.SessionSignedOut, ev.Kind)
	default:
		t.Fatal("expected sign-out event")
	}

	_, err = p.MintToken(context.Background(), "dev-user")
	require.Error(t, err)
}

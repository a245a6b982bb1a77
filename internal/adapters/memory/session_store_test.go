package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/prodcat/catalog-admin/internal/adapters/redis"
	domainauth "github.com/prodcat/catalog-admin/internal/domain/auth"
)

func validSession(id, userID string) domainauth.Session {
	return domainauth.Session{
		ID:        id,
		UserID:    userID,
		Email:     userID + "@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	sess := validSession("s1", "user-1")
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, sess.Email, got.Email)
}

func TestSessionStore_SaveRejectsInvalid(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	err := store.Save(ctx, domainauth.Session{UserID: "u"})
	require.Error(t, err)

	expired := validSession("s1", "u")
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	err = store.Save(ctx, expired)
	require.Error(t, err)
}

func TestSessionStore_GetMissing(t *testing.T) {
	store := NewSessionStore()
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, redisstore.ErrNotFound)
}

func TestSessionStore_GetExpired(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	sess := validSession("s1", "u")
	require.NoError(t, store.Save(ctx, sess))

	// Force expiry after save
	store.mu.Lock()
	sess.ExpiresAt = time.Now().Add(-time.Second)
	store.sessions["s1"] = sess
	store.mu.Unlock()

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, redisstore.ErrNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, validSession("s1", "u")))
	require.NoError(t, store.Delete(ctx, "s1"))
	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, redisstore.ErrNotFound)

	// Deleting a missing session is a no-op
	require.NoError(t, store.Delete(ctx, "s1"))
}

func TestSessionStore_DeleteByUser(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, validSession("s1", "alice")))
	require.NoError(t, store.Save(ctx, validSession("s2", "alice")))
	require.NoError(t, store.Save(ctx, validSession("s3", "bob")))

	require.NoError(t, store.DeleteByUser(ctx, "alice"))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, redisstore.ErrNotFound)
	_, err = store.Get(ctx, "s2")
	assert.ErrorIs(t, err, redisstore.ErrNotFound)

	_, err = store.Get(ctx, "s3")
	assert.NoError(t, err)
}

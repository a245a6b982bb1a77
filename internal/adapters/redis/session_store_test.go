package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/prodcat/catalog-admin/internal/domain/auth"
	"github.com/prodcat/catalog-admin/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests are skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func testSession(id, userID string) domainauth.Session {
	return domainauth.Session{
		ID:        id,
		UserID:    userID,
		Email:     userID + "@example.com",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	session := testSession("test-session-1", "user-123")
	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.UserID, retrieved.UserID)
	assert.Equal(t, session.Email, retrieved.Email)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestSessionStore_SaveValidation(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	err := store.Save(ctx, domainauth.Session{UserID: "u"})
	require.Error(t, err)

	expired := testSession("expired", "u")
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	err = store.Save(ctx, expired)
	require.Error(t, err)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "non-existent")
	assert.Equal(t, ErrNotFound, err)

	_, err = store.Get(context.Background(), "")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("test-session-delete", "user-123")))
	require.NoError(t, store.Delete(ctx, "test-session-delete"))

	_, err := store.Get(ctx, "test-session-delete")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_DeleteByUser(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("sess-a", "alice")))
	require.NoError(t, store.Save(ctx, testSession("sess-b", "alice")))
	require.NoError(t, store.Save(ctx, testSession("sess-c", "bob")))

	require.NoError(t, store.DeleteByUser(ctx, "alice"))

	_, err := store.Get(ctx, "sess-a")
	assert.Equal(t, ErrNotFound, err)
	_, err = store.Get(ctx, "sess-b")
	assert.Equal(t, ErrNotFound, err)

	_, err = store.Get(ctx, "sess-c")
	assert.NoError(t, err)

	// No-op for unknown user
	require.NoError(t, store.DeleteByUser(ctx, "nobody"))
}

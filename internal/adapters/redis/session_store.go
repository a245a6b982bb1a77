package redis

// Package redis provides the Redis-backed session store for production use.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/prodcat/catalog-admin/internal/domain/auth"
)

// SessionStore is a Redis-based session store.
// It handles TTL semantics automatically based on session ExpiresAt and keeps
// a per-user index so provider-side sign-out events can clear every session
// belonging to a user.
type SessionStore struct {
	client    redis.UniversalClient
	prefix    string
	idxPrefix string
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{
		client:    client,
		prefix:    "session:",
		idxPrefix: "user_sessions:",
	}
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		// Session is already expired, don't save it
		return errors.New("session is expired")
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.prefix+sess.ID, data, ttl)
	if sess.UserID != "" {
		idxKey := s.idxPrefix + sess.UserID
		pipe.SAdd(ctx, idxKey, sess.ID)
		pipe.ExpireGT(ctx, idxKey, ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	// Double-check expiration (Redis TTL should handle this, but be defensive)
	if !sess.Active(time.Now()) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return domainauth.Session{}, ErrNotFound
	}

	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil // Nothing to delete
	}

	return s.client.Del(ctx, s.prefix+id).Err()
}

// DeleteByUser removes every session recorded for the user in the index.
func (s *SessionStore) DeleteByUser(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}

	idxKey := s.idxPrefix + userID
	ids, err := s.client.SMembers(ctx, idxKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("redis smembers: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, s.prefix+id)
	}
	keys = append(keys, idxKey)
	return s.client.Del(ctx, keys...).Err()
}

// ErrNotFound is returned when a session is not found.
type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

var ErrNotFound error = notFoundError{}

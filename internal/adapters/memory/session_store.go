package memory

// Package memory provides an in-process session store used in development
// mode when Redis is not configured. Semantics mirror the Redis store.

import (
	"context"
	"sync"
	"time"

	domainauth "github.com/prodcat/catalog-admin/internal/domain/auth"
	redisstore "github.com/prodcat/catalog-admin/internal/adapters/redis"
)

// SessionStore is a thread-safe in-memory session store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domainauth.Session
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domainauth.Session)}
}

func (s *SessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errEmptyID
	}
	if !sess.Active(time.Now()) {
		return errExpired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return domainauth.Session{}, redisstore.ErrNotFound
	}

	if !sess.Active(time.Now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return domainauth.Session{}, redisstore.ErrNotFound
	}

	return sess, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// DeleteByUser removes all sessions belonging to the given user.
func (s *SessionStore) DeleteByUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

type storeError string

func (e storeError) Error() string { return string(e) }

const (
	errEmptyID storeError = "session ID cannot be empty"
	errExpired storeError = "session is expired"
)

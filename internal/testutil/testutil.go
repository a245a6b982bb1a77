package testutil

// Package testutil provides shared helpers for tests: a Redis connection
// with skip-if-unavailable semantics and a configurable fake upstream
// products API.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// TestingTB is the subset of testing.TB we rely on, kept as an interface so
// helpers can be exercised from examples and benchmarks too.
type TestingTB interface {
	Helper()
	Skipf(format string, args ...any)
	Fatalf(format string, args ...any)
	Cleanup(func())
	Logf(format string, args ...any)
}

// SetupTestRedis creates a Redis client for testing, skipping the test when
// Redis is not reachable. Address comes from TEST_REDIS_ADDR, defaulting to
// localhost:6379.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			t.Logf("warning: failed to close redis client after ping error: %v", cerr)
		}
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	t.Cleanup(func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer flushCancel()
		if err := client.FlushDB(flushCtx).Err(); err != nil {
			t.Logf("warning: failed to flush test redis db: %v", err)
		}
		if err := client.Close(); err != nil {
			t.Logf("warning: failed to close redis client: %v", err)
		}
	})

	return client
}

// UpstreamCall records one request observed by the fake upstream.
type UpstreamCall struct {
	Method string
	Path   string
	Query  map[string]string
	Header http.Header
	Body   map[string]any
}

// FakeUpstream is an httptest-backed stand-in for the upstream products API.
// Handlers are keyed by "METHOD path"; unmatched requests get a 404.
type FakeUpstream struct {
	Server   *httptest.Server
	Calls    []UpstreamCall
	handlers map[string]http.HandlerFunc
}

// NewFakeUpstream starts a fake upstream server; it is shut down via Cleanup.
func NewFakeUpstream(t TestingTB) *FakeUpstream {
	t.Helper()

	f := &FakeUpstream{handlers: make(map[string]http.HandlerFunc)}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := UpstreamCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  map[string]string{},
			Header: r.Header.Clone(),
		}
		for k := range r.URL.Query() {
			call.Query[k] = r.URL.Query().Get(k)
		}
		if r.Body != nil {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				call.Body = body
			}
		}
		f.Calls = append(f.Calls, call)

		if h, ok := f.handlers[r.Method+" "+r.URL.Path]; ok {
			h(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(f.Server.Close)
	return f
}

// Handle registers a handler for "METHOD path" on the fake upstream.
func (f *FakeUpstream) Handle(methodAndPath string, h http.HandlerFunc) {
	f.handlers[methodAndPath] = h
}

// RespondJSON registers a handler returning the given status and JSON body.
func (f *FakeUpstream) RespondJSON(methodAndPath string, status int, body any) {
	f.Handle(methodAndPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

// LastCall returns the most recent upstream call, or nil when none occurred.
func (f *FakeUpstream) LastCall() *UpstreamCall {
	if len(f.Calls) == 0 {
		return nil
	}
	return &f.Calls[len(f.Calls)-1]
}

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prodcat/catalog-admin/config"
	"github.com/prodcat/catalog-admin/internal/adapters/devauth"
	"github.com/prodcat/catalog-admin/internal/adapters/idp"
	"github.com/prodcat/catalog-admin/internal/adapters/memory"
	redisstore "github.com/prodcat/catalog-admin/internal/adapters/redis"
	"github.com/prodcat/catalog-admin/internal/adapters/upstream"
	"github.com/prodcat/catalog-admin/internal/ports"
)

// BuildAuthProvider selects the identity provider adapter from configuration.
// Development mode falls back to the mock provider when no discovery URL is
// configured.
//
//nolint:ireturn // the provider implementation is chosen at runtime.
func BuildAuthProvider(cfg *config.AppConfig, logger *slog.Logger) (ports.AuthProvider, error) {
	mode := cfg.Auth.Mode
	if mode == config.AuthModeOAuth && cfg.Auth.OAuth.DiscoveryURL == "" && cfg.IsDev {
		logger.Warn("no identity provider configured, using mock auth (dev mode)")
		mode = config.AuthModeMock
	}

	switch mode {
	case config.AuthModeMock:
		if !cfg.IsDev {
			return nil, errors.New("mock auth is only available in dev mode")
		}
		return devauth.NewProvider(devauth.Config{
			UserID:          cfg.Auth.DevAuth.UserID,
			Email:           cfg.Auth.DevAuth.Email,
			SessionDuration: cfg.Auth.SessionTTL,
		})
	case config.AuthModeOAuth:
		provider, err := idp.NewProvider(idp.ProviderConfig{
			ClientID:     cfg.Auth.OAuth.ClientID,
			ClientSecret: cfg.Auth.OAuth.ClientSecret,
			Scope:        cfg.Auth.OAuth.Scope,
			DiscoveryURL: cfg.Auth.OAuth.DiscoveryURL,
		})
		if err != nil {
			return nil, fmt.Errorf("build identity provider: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", mode)
	}
}

// ConnectRedis establishes a connection to Redis.
//
//nolint:ireturn // redis.UniversalClient keeps client selection flexible.
func ConnectRedis(cfg config.RedisConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, errors.New("redis configuration requires a URI")
	}

	var client redis.UniversalClient
	if strings.HasPrefix(uri, "redis://") || strings.HasPrefix(uri, "rediss://") {
		opt, err := redis.ParseURL(uri)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     uri,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if logger != nil {
		logger.Info("redis connected", "addr", uri)
	}

	return client, nil
}

// BuildSessionStore picks the session store backend: Redis when enabled,
// otherwise the in-memory store (dev mode only).
//
//nolint:ireturn // the store implementation is chosen at runtime.
func BuildSessionStore(cfg *config.AppConfig, logger *slog.Logger) (ports.SessionStore, redis.UniversalClient, error) {
	if !cfg.Redis.Enabled {
		if !cfg.IsDev {
			return nil, nil, errors.New("a redis session store is required outside dev mode")
		}
		logger.Warn("redis disabled, using in-memory session store (dev mode)")
		return memory.NewSessionStore(), nil, nil
	}

	client, err := ConnectRedis(cfg.Redis, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return redisstore.NewSessionStore(client), client, nil
}

// BuildUpstreamClient constructs the products API client from configuration.
func BuildUpstreamClient(cfg config.UpstreamConfig) (*upstream.Client, error) {
	client, err := upstream.NewClient(upstream.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build upstream client: %w", err)
	}
	return client, nil
}

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/prodcat/catalog-admin/config"
	"github.com/prodcat/catalog-admin/internal/service"
)

// Run wires the adapters and services, starts the HTTP server, and blocks
// until a shutdown signal is received or a component fails.
func Run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	if cfg == nil {
		return errors.New("app config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := BuildAuthProvider(cfg, logger)
	if err != nil {
		return err
	}

	sessions, redisClient, err := BuildSessionStore(cfg, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	upstreamClient, err := BuildUpstreamClient(cfg.Upstream)
	if err != nil {
		return err
	}

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Provider:   provider,
		Sessions:   sessions,
		SessionTTL: cfg.Auth.SessionTTL,
		Logger:     logger,
	})
	authSvc.Watch(ctx)

	catalogSvc := service.NewCatalogService(upstreamClient)

	logger.InfoContext(ctx, "starting catalog admin",
		"addr", cfg.HTTP.Addr,
		"upstream", cfg.Upstream.BaseURL,
		"auth_mode", cfg.Auth.Mode,
		"dev", cfg.IsDev)

	server := StartHTTPServer(&HTTPServerConfig{
		Config:  cfg,
		Catalog: catalogSvc,
		Auth:    authSvc,
		Logger:  logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		if err := ShutdownHTTPServer(context.Background(), server, logger); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

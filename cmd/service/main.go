// Package main is the entry point for the ritual service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/ritual-service/internal/adapters/http"
	"github.com/jsamuelsen/ritual-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/ritual-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/ritual-service/internal/platform/config"
	"github.com/jsamuelsen/ritual-service/internal/platform/logging"
	"github.com/jsamuelsen/ritual-service/internal/platform/telemetry"
	"github.com/jsamuelsen/ritual-service/internal/wiring"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Wire adapters and application services
	svc, err := wiring.Build(ctx, cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("wiring services: %w", err)
	}

	defer func() {
		if closeErr := svc.Close(); closeErr != nil {
			logger.Error("closing adapters", slog.Any("error", closeErr))
		}
	}()

	// 6. Start fulfilment workers
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	workersDone := make(chan error, 1)

	go func() { workersDone <- svc.Workers.Run(workerCtx) }()

	// 7. Create handlers and the HTTP server
	routerCfg := http.RouterConfig{
		ServiceName:       cfg.Telemetry.ServiceName,
		Health:            handlers.NewHealthHandler(svc.Health, handlers.NewBuildInfo(Version, Commit, BuildTime), prometheus.DefaultGatherer),
		Rituals:           handlers.NewRitualHandler(svc.Rituals),
		Fulfilment:        handlers.NewFulfilmentHandler(svc.Fulfilment),
		Reference:         handlers.NewReferenceHandler(svc.Locations),
		Timeout:           cfg.Server.RequestTimeout,
		FulfilmentTimeout: cfg.Fulfilment.Timeout,
		InternalSecret:    cfg.Fulfilment.InternalSecret,
	}

	if svc.Checkout != nil {
		routerCfg.Checkout = handlers.NewCheckoutHandler(svc.Checkout)
	}

	if cfg.RateLimit.Enabled {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), routerCfg)

	// 8. Start server (non-blocking)
	serverErr := server.Start()

	// 9. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, shutdownHooks{
		timeout: cfg.Server.ShutdownTimeout,
		drain: func(drainCtx context.Context) error {
			svc.Workers.Close()

			select {
			case err := <-workersDone:
				return err
			case <-drainCtx.Done():
				stopWorkers()

				return errors.New("fulfilment workers did not drain before the shutdown deadline")
			}
		},
	})
}

// shutdownHooks run after the HTTP server stops accepting requests.
type shutdownHooks struct {
	timeout time.Duration

	// drain waits for background work to finish or the context to expire.
	drain func(ctx context.Context) error
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then stops the HTTP server and drains background work.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	hooks shutdownHooks,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, hooks.timeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", hooks.timeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// Paid orders already queued are fulfilled before exit
	if hooks.drain != nil {
		if err := hooks.drain(shutdownCtx); err != nil {
			logger.Warn("background work interrupted", slog.Any("error", err))
		}
	}

	logger.Info("shutdown complete")

	return nil
}

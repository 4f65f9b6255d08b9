// Package main is the entry point of the Guise server. It wires all
// dependencies using samber/do v2, serves the demo application, and handles
// graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/guise/internal/adapters/http"
	"github.com/jsamuelsen11/guise/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/guise/internal/adapters/http/middleware"

	"github.com/jsamuelsen11/guise/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/guise/internal/adapters/persistence/sqlite"
	"github.com/jsamuelsen11/guise/internal/adapters/web/depict"
	"github.com/jsamuelsen11/guise/internal/app"
	"github.com/jsamuelsen11/guise/internal/platform/config"
	"github.com/jsamuelsen11/guise/internal/platform/health"
	"github.com/jsamuelsen11/guise/internal/platform/httpclient"
	"github.com/jsamuelsen11/guise/internal/platform/logging"
	"github.com/jsamuelsen11/guise/internal/platform/telemetry"
	"github.com/jsamuelsen11/guise/internal/ports"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
	storeOpenTimeout      = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.Metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	if cfg.Themes.BaseURL != "" {
		registry.Register(do.MustInvoke[*acl.ThemeClient](injector))
	}
	var store *sqlite.Store
	if cfg.Preferences.Enabled {
		store = do.MustInvoke[*sqlite.Store](injector)
		registry.Register(store)
	}

	// Expire idle sessions until shutdown.
	container := do.MustInvoke[*app.Container](injector)
	expiryCtx, stopExpiry := context.WithCancel(ctx)
	expiryDone := make(chan struct{})
	go func() {
		defer close(expiryDone)
		container.Run(expiryCtx)
	}()

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		stopExpiry()
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests, then end the sessions.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	stopExpiry()
	<-expiryDone
	container.Close(shutdownCtx)

	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("preference store close error", slog.Any("error", err))
		}
	}

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

func initTelemetry(ctx context.Context, cfg config.TelemetryConfig) (*telemetry.Providers, error) {
	if !cfg.Enabled {
		return &telemetry.Providers{}, nil
	}
	return telemetry.Setup(ctx, telemetry.Options{
		ServiceName: cfg.ServiceName,
		Exporter:    cfg.Exporter,
		Endpoint:    cfg.Endpoint,
	})
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Themes, "theme-server", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*acl.ThemeClient, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		return acl.NewThemeClient(client, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.ThemeService, error) {
		// Remote themes are only fetched when a theme server is configured.
		var remote ports.ThemeSource
		if cfg.Themes.BaseURL != "" {
			remote = do.MustInvoke[*acl.ThemeClient](i)
		}
		return app.NewThemeService(acl.NewThemeFiles("."), remote, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (*sqlite.Store, error) {
		ctx, cancel := context.WithTimeout(context.Background(), storeOpenTimeout)
		defer cancel()
		return sqlite.Open(ctx, cfg.Preferences.Path)
	})

	do.Provide(injector, func(i do.Injector) (*app.Container, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		opts := []app.ContainerOption{app.WithMetrics(metrics)}
		if cfg.Preferences.Enabled {
			store, err := do.Invoke[*sqlite.Store](i)
			if err != nil {
				return nil, fmt.Errorf("opening preference store: %w", err)
			}
			opts = append(opts, app.WithPreferenceStore(store))
		}

		themes := do.MustInvoke[*app.ThemeService](i)
		container := app.NewContainer(cfg.Guise, depict.DefaultRegistry(), themes, logger, opts...)
		if err := container.Register(demoApplication(cfg.Guise)); err != nil {
			return nil, fmt.Errorf("registering %s: %w", cfg.Guise.Application, err)
		}
		return container, nil
	})

	do.Provide(injector, func(i do.Injector) (ports.PageService, error) {
		container := do.MustInvoke[*app.Container](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewPageService(container, cfg.Guise.RenderWorkers, metrics, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) ([]*handlers.PageHandler, error) {
		pages := do.MustInvoke[ports.PageService](i)
		container := do.MustInvoke[*app.Container](i)

		var hs []*handlers.PageHandler
		for _, a := range container.Applications() {
			hs = append(hs, handlers.NewPageHandler(pages, a.Name, a.BasePath))
		}
		return hs, nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		pageHs := do.MustInvoke[[]*handlers.PageHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(pageHs, healthH, cfg.Guise.ResourcesDir,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.Session(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}

// Package app assembles configuration, logging, the dashboard service and
// the HTTP router into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sheetlog/internal/config"
	apierrors "sheetlog/internal/errors"
	"sheetlog/internal/exporter"
	"sheetlog/internal/infrastructure"
	custommw "sheetlog/internal/middleware"
	"sheetlog/internal/services"
	handlers "sheetlog/internal/transport/http"
)

// Version is the reported application version, overridable at link time.
var Version = "dev"

// Application is the assembled server.
type Application struct {
	Config    *config.Config
	Router    *chi.Mux
	Server    *http.Server
	Dashboard *services.DashboardService
	Logger    *slog.Logger
}

// NewApplication loads configuration and wires every component.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return NewApplicationWithConfig(cfg)
}

// NewApplicationWithConfig wires the application over an already loaded
// configuration. Tests use this entry point.
func NewApplicationWithConfig(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.String("workbooks_dir", cfg.Paths.WorkbooksDir))

	dashboard, err := services.NewDashboardService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build dashboard service: %w", err)
	}

	a := &Application{
		Config:    cfg,
		Dashboard: dashboard,
		Logger:    logger,
	}
	a.Router = a.setupRouter()
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return a, nil
}

func (a *Application) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(custommw.RequestID)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	if a.Config.Server.RateLimit.Enabled {
		r.Use(custommw.RateLimit(a.Config.Server.RateLimit.RPS, a.Config.Server.RateLimit.Burst))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := custommw.NewRequestMetrics(registry)
	r.Use(metrics.Middleware)

	errorHandler := apierrors.NewErrorHandler(a.Logger)
	fileWriter := exporter.NewFileWriter(a.Config.Paths.ReportsDir, a.Logger)
	dashboardHandler := handlers.NewDashboardHandler(a.Dashboard, a.Logger, errorHandler, fileWriter)
	healthHandler := handlers.NewHealthHandler(Version)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/", dashboardHandler.Routes())
		r.Get("/healthz", healthHandler.Healthz)
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}

// Run starts the server and blocks until the context is cancelled or a
// termination signal arrives, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	timeout := a.Config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

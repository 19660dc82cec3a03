package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vadim/social-pulse/internal/config"
	httpcontroller "github.com/vadim/social-pulse/internal/controller/http"
	"github.com/vadim/social-pulse/internal/database"
	"github.com/vadim/social-pulse/internal/domain/check/dao"
	checkpolicy "github.com/vadim/social-pulse/internal/domain/check/policy"
	"github.com/vadim/social-pulse/internal/domain/check/scheduler"
	checkservice "github.com/vadim/social-pulse/internal/domain/check/service"
	socialentity "github.com/vadim/social-pulse/internal/domain/social/entity"
	socialpolicy "github.com/vadim/social-pulse/internal/domain/social/policy"
	socialservice "github.com/vadim/social-pulse/internal/domain/social/service"
	"github.com/vadim/social-pulse/internal/export"
	"github.com/vadim/social-pulse/internal/httpx/response"
	upstream "github.com/vadim/social-pulse/internal/httpx/upstream/social"
	"github.com/vadim/social-pulse/internal/storage"
)

// App is the main application container
type App struct {
	cfg        config.Config
	httpServer *http.Server
	router     *chi.Mux
	logger     *slog.Logger

	// Check history storage
	reports dao.ReportRepository

	// Domain policies (interfaces for HTTP handlers)
	socialPolicy *socialpolicy.Policy
	checkPolicy  *checkpolicy.Policy

	// Background jobs
	scheduler *scheduler.Scheduler
	exporter  *export.Exporter
}

// NewLogger creates the JSON logger used by every component
func NewLogger(cfg config.Log) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}

// NewSocialService wires the upstream client and the aggregation service
func NewSocialService(cfg config.Upstream, logger *slog.Logger) (*upstream.Client, *socialservice.Service) {
	client := upstream.New(
		upstream.WithBaseURL(cfg.BaseURL),
		upstream.WithTimeout(cfg.Timeout),
		upstream.WithLogger(logger),
	)
	svc := socialservice.New(client, logger, socialservice.WithConcurrency(cfg.Concurrency))
	return client, svc
}

// NewApp creates and initializes the application
func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	logger := NewLogger(cfg.Log)

	// Initialize router with middleware
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Timeout(30 * time.Second))

	app := &App{
		cfg:    cfg,
		router: r,
		logger: logger,
	}

	// Initialize infrastructure
	if err := app.initInfrastructure(ctx); err != nil {
		return nil, fmt.Errorf("initializing infrastructure: %w", err)
	}

	// Initialize domain layers
	if err := app.initDomains(ctx); err != nil {
		app.reports.Close()
		return nil, fmt.Errorf("initializing domains: %w", err)
	}

	// Register routes
	app.registerRoutes()

	// Initialize HTTP server
	app.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      app.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// initInfrastructure opens the check history store
func (a *App) initInfrastructure(ctx context.Context) error {
	if dsn := a.cfg.Database.PostgresDSN; dsn != "" {
		pool, err := database.NewPostgresPool(ctx, database.PoolConfig{
			DSN:          dsn,
			MaxConns:     a.cfg.Database.MaxOpenConns,
			MinConns:     a.cfg.Database.MinConns,
			ConnLifetime: a.cfg.Database.ConnLifetime,
		})
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		a.reports = dao.NewReportPostgres(pool)
		a.logger.Info("check history stored in postgres")
	} else {
		repo, err := dao.OpenReportSQLite(a.cfg.Database.SQLitePath)
		if err != nil {
			return fmt.Errorf("opening sqlite: %w", err)
		}
		a.reports = repo
		a.logger.Info("check history stored in sqlite", "path", a.cfg.Database.SQLitePath)
	}

	if err := a.reports.Migrate(ctx); err != nil {
		a.reports.Close()
		return fmt.Errorf("migrating check history: %w", err)
	}

	return nil
}

// initDomains initializes domain layers (DAO, Service, Policy)
func (a *App) initDomains(ctx context.Context) error {
	client, socialSvc := NewSocialService(a.cfg.Upstream, a.logger)
	a.socialPolicy = socialpolicy.New(socialSvc)

	suite := checkservice.NewSuite(client, socialSvc, socialentity.NumberKinds, a.logger)
	a.checkPolicy = checkpolicy.New(suite, a.reports, a.logger)

	if a.cfg.Scheduler.Enabled {
		a.scheduler = scheduler.New(a.checkPolicy, a.cfg.Scheduler.Interval, a.logger)
	}

	if a.cfg.Export.Enabled {
		store, err := storage.NewS3Storage(storage.S3Config{
			Endpoint:        a.cfg.S3.Endpoint,
			AccessKeyID:     a.cfg.S3.AccessKeyID,
			SecretAccessKey: a.cfg.S3.SecretAccessKey,
			Bucket:          a.cfg.S3.Bucket,
			Region:          a.cfg.S3.Region,
			Prefix:          a.cfg.S3.Prefix,
			PublicURL:       a.cfg.S3.PublicURL,
		})
		if err != nil {
			return fmt.Errorf("creating s3 storage: %w", err)
		}
		a.exporter = export.New(a.socialPolicy, store, export.Config{
			TopUsersLimit: a.cfg.Export.TopUsersLimit,
			JobTimeout:    a.cfg.Export.JobTimeout,
		}, a.logger)
	}

	return nil
}

// registerRoutes registers all HTTP routes
func (a *App) registerRoutes() {
	// Health check
	a.router.Get("/healthz", a.healthHandler)
	a.router.Get("/readyz", a.readyHandler)

	// Swagger UI documentation
	swaggerHandler := httpcontroller.NewSwaggerHandler("Social Pulse API", OpenAPISpec)
	swaggerHandler.RegisterRoutes(a.router)

	// API v1
	a.router.Route("/api/v1", func(r chi.Router) {
		httpcontroller.NewSocialHandler(a.socialPolicy).RegisterRoutes(r)
		httpcontroller.NewCheckHandler(a.checkPolicy).RegisterRoutes(r)
	})
}

// Handler returns the application router
func (a *App) Handler() http.Handler {
	return a.router
}

// healthHandler handles health check requests
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}

// readyHandler reports ready once the check history store answers
func (a *App) readyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.reports.Ping(ctx); err != nil {
		a.logger.Warn("readiness check failed", "error", err)
		response.Error(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	response.OK(w, map[string]string{"status": "ready"})
}

// Run starts the application and blocks until shutdown signal
func (a *App) Run(ctx context.Context) error {
	// Start background jobs if enabled
	if a.scheduler != nil {
		a.scheduler.Start(ctx)
	}
	if a.exporter != nil {
		if err := a.exporter.Start(a.cfg.Export.Schedule); err != nil {
			if shutdownErr := a.Shutdown(context.Background()); shutdownErr != nil {
				a.logger.Error("shutdown after failed start", "error", shutdownErr)
			}
			return err
		}
	}

	// Channel to receive errors from server
	errCh := make(chan error, 1)

	// Start HTTP server in goroutine
	go func() {
		a.logger.Info("starting HTTP server", "addr", a.cfg.Server.Address())
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		a.Shutdown(context.Background())
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.logger.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		a.logger.Info("context cancelled")
	}

	// Graceful shutdown
	return a.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down...")

	// Stop background jobs
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.exporter != nil {
		a.exporter.Stop()
	}

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}

	if err := a.reports.Close(); err != nil {
		return fmt.Errorf("closing check history: %w", err)
	}

	a.logger.Info("shutdown complete")
	return nil
}

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

	httpapi "github.com/nestnote/nestnote/internal/session/http"
	"github.com/nestnote/nestnote/internal/session/service"
	"github.com/nestnote/nestnote/internal/session/store"
	"github.com/nestnote/nestnote/internal/session/store/drivers/sqlite"
	"github.com/nestnote/nestnote/pkg/jwtx"
	"github.com/nestnote/nestnote/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the session service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	verifier jwtx.Verifier

	directoryService    *service.DirectoryService
	sessionService      *service.SessionService
	inviteService       *service.InviteService
	joinService         *service.JoinService
	selectionService    *service.SelectionService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if cfg.AuthSecret == "" {
		return nil, errors.New("SESSION_AUTH_SECRET must be set")
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "session-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	app.verifier = &jwtx.HS256Verifier{
		Secret: []byte(cfg.AuthSecret),
		Issuer: cfg.AuthIssuer,
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("session service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down session service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("session service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.directoryService = &service.DirectoryService{Store: app.db}
	app.sessionService = &service.SessionService{Store: app.db}

	app.inviteService = &service.InviteService{
		Store:    app.db,
		Notifier: app.buildNotifier(),
		TTL:      app.cfg.InviteTTL,
		WebBase:  app.cfg.WebBase,
	}

	app.joinService = &service.JoinService{Store: app.db}
	app.selectionService = service.NewSelectionService(app.db, app.inviteService)

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// buildNotifier selects the invite notification channel: the webhook gateway
// when configured, a log-only notifier otherwise.
func (app *Application) buildNotifier() service.InviteNotifier {
	if app.cfg.NotifyWebhook != "" {
		app.logger.Info("invite notifications via webhook", "url", app.cfg.NotifyWebhook)
		return service.NewWebhookNotifier(app.cfg.NotifyWebhook)
	}
	return &service.LogNotifier{Logger: app.logger}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.DirectoryService = app.directoryService
	router.SessionService = app.sessionService
	router.InviteService = app.inviteService
	router.JoinService = app.joinService
	router.SelectionService = app.selectionService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

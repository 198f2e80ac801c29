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

	httpapi "github.com/aussiebroadwan/sso/internal/sso/http"
	"github.com/aussiebroadwan/sso/internal/sso/metrics"
	"github.com/aussiebroadwan/sso/internal/sso/service"
	"github.com/aussiebroadwan/sso/internal/sso/store"
	"github.com/aussiebroadwan/sso/internal/sso/store/drivers/sqlite"
	"github.com/aussiebroadwan/sso/pkg/cryptox"
	"github.com/aussiebroadwan/sso/pkg/httpx"
	"github.com/aussiebroadwan/sso/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X ...app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application encapsulates the sso service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	hasher  *cryptox.SecretHasher
	metrics *metrics.Metrics

	tokenService        *service.TokenService
	userService         *service.UserService
	clientService       *service.ClientService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "sso",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metrics.New(),
	}

	pepper, err := cryptox.LoadPepper(cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	if app.hasher, err = cryptox.NewSecretHasher(pepper); err != nil {
		return nil, fmt.Errorf("failed to initialise secret hasher: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	httpx.LoadRateLimitsFromEnv()

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the fully wired router, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("sso service starting",
		"port", app.cfg.Port,
		"issuer", app.cfg.Issuer,
		"admin_api", app.cfg.AdminToken != "",
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.db.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	app.logger.Info("shutting down sso service...")

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

	app.logger.Info("sso service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	dsn := app.cfg.DatabaseFile
	if dsn != ":memory:" {
		// Pragmas in the DSN apply to every pooled connection.
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	}

	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Store:      app.db,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}
	app.userService = &service.UserService{Store: app.db}
	app.clientService = &service.ClientService{Store: app.db, Hasher: app.hasher}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		nil,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	cors := httpx.DefaultCORS
	cors.MaxAge = app.cfg.CORSMaxAge

	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.logger,
		httpapi.WithAdminToken(app.cfg.AdminToken),
		httpapi.WithCORS(cors),
		httpapi.WithMetrics(app.metrics),
	)

	router.TokenService = app.tokenService
	router.UserService = app.userService
	router.ClientService = app.clientService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

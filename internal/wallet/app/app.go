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

	httpapi "github.com/chillarlabs/chillar/internal/wallet/http"
	"github.com/chillarlabs/chillar/internal/wallet/service"
	"github.com/chillarlabs/chillar/internal/wallet/settle"
	"github.com/chillarlabs/chillar/internal/wallet/store"
	"github.com/chillarlabs/chillar/internal/wallet/store/drivers/sqlite"
	"github.com/chillarlabs/chillar/pkg/idx"
	"github.com/chillarlabs/chillar/pkg/jwtx"
	"github.com/chillarlabs/chillar/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the wallet service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	keypair    *jwtx.Keypair
	settlement settle.Service

	// Services
	accountService       *service.AccountService
	vaultService         *service.VaultService
	sessionService       *service.SessionService
	authenticatorService *service.AuthenticatorService
	delegationService    *service.DelegationService
	spendService         *service.SpendService
	attestService        *service.AttestService
	paymentService       *service.PaymentService
	housekeepingService  *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "wallet-core",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	// Session keys are ephemeral: a restart invalidates outstanding sessions.
	keypair, err := jwtx.NewKeypair(idx.New().String(), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.keypair = keypair

	applyRateLimitOverrides()

	app.initSettlement()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("wallet service starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down wallet service...")

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

	app.logger.Info("wallet service stopped")
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

// initSettlement picks the settlement backend. Without a configured URL the
// service runs against the in-memory fake, which is the dev and test mode.
func (app *Application) initSettlement() {
	if app.cfg.SettlementURL == "" {
		app.settlement = settle.NewFake()
		app.logger.Warn("no settlement URL configured, using in-memory settlement fake")
		return
	}
	app.settlement = settle.NewClient(app.cfg.SettlementURL)
	app.logger.Info("settlement client configured", "url", app.cfg.SettlementURL)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.vaultService = &service.VaultService{Store: app.db}
	app.accountService = &service.AccountService{
		Store: app.db,
		Vault: app.vaultService,
	}
	app.authenticatorService = &service.AuthenticatorService{
		Store:  app.db,
		Issuer: app.cfg.Issuer,
	}
	app.sessionService = &service.SessionService{
		Accounts:      app.accountService,
		Authenticator: app.authenticatorService,
		Signer:        app.keypair,
		Issuer:        app.cfg.Issuer,
		TTL:           app.cfg.SessionTTL,
	}
	app.delegationService = &service.DelegationService{Store: app.db}
	app.spendService = &service.SpendService{Store: app.db, Now: time.Now}
	app.attestService = &service.AttestService{Store: app.db}
	app.paymentService = &service.PaymentService{
		Store:       app.db,
		Vault:       app.vaultService,
		Delegations: app.delegationService,
		Spend:       app.spendService,
		Attest:      app.attestService,
		Settlement:  app.settlement,
		SplitPolicy: service.DefaultSplitPolicy,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.authenticatorService,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keypair,
		BuildVersion,
		app.db,
		app.settlement,
		app.logger,
	)

	// Wire services to router
	router.AccountService = app.accountService
	router.SessionService = app.sessionService
	router.AuthenticatorService = app.authenticatorService
	router.DelegationService = app.delegationService
	router.VaultService = app.vaultService
	router.PaymentService = app.paymentService
	router.AttestService = app.attestService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "cryptofolio/internal/api"
	"cryptofolio/internal/api/handler"
	"cryptofolio/internal/config"
	"cryptofolio/internal/marketdata"
	"cryptofolio/internal/marketdata/coincap"
	"cryptofolio/internal/repository"
	"cryptofolio/internal/repository/postgres"
	"cryptofolio/internal/service"
	"cryptofolio/internal/util"
	"cryptofolio/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository        repository.UserRepository
	SessionRepository     repository.SessionRepository
	WalletRepository      repository.WalletRepository
	HoldingRepository     repository.HoldingRepository
	TransactionRepository repository.TransactionRepository

	// Market data
	Quotes marketdata.QuoteProvider

	// Services
	AuthService      service.AuthService
	WalletService    service.WalletService
	MarketService    service.MarketService
	DashboardService service.DashboardService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{Logger: util.GetLogger()}
}

// Initialize loads configuration and wires all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	return app.InitializeWith(ctx, cfg)
}

// InitializeWith wires all application components from cfg.
func (app *Application) InitializeWith(ctx context.Context, cfg *config.AppConfig) error {
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, app.DB); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		app.Logger.Info("Database schema applied.")
	}

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository()
	app.SessionRepository = postgres.NewSessionRepository()
	app.WalletRepository = postgres.NewWalletRepository()
	app.HoldingRepository = postgres.NewHoldingRepository()
	app.TransactionRepository = postgres.NewTransactionRepository()
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Market Data Provider
	app.Quotes = coincap.NewClient(cfg.CoinCap, app.Logger.With("component", "coincap"))
	app.Logger.Info("Market data provider initialized.", "base_url", cfg.CoinCap.BaseURL)

	// 6. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	app.AuthService = service.NewAuthService(app.DB, app.SessionRepository, app.UserRepository, app.Logger)
	app.WalletService = service.NewWalletService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.WalletRepository,
		app.HoldingRepository,
		app.TransactionRepository,
		app.Quotes,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.MarketService = service.NewMarketService(app.Quotes, app.Logger)
	app.DashboardService = service.NewDashboardService(app.WalletService, app.MarketService, app.Quotes, cfg.Dashboard, app.Logger)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	app.HTTPHandler = router.NewRouter(router.Handlers{
		Crypto: handler.NewCryptoHandler(app.WalletService, app.MarketService, app.DashboardService, app.Logger),
		Health: handler.NewHealthHandler(app.DB, app.Logger),
		Auth:   handler.NewAuthMiddleware(app.AuthService, app.Logger),
	}, cfg.CORSAllowedOrigins, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}

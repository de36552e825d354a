package routes

import (
	"time"

	"sacco-ledger/internal/adapters/http/handlers"
	"sacco-ledger/internal/adapters/http/middleware"
	"sacco-ledger/internal/adapters/persistence/repositories"
	"sacco-ledger/internal/config"
	"sacco-ledger/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies are the services the HTTP layer is wired to
type Dependencies struct {
	LedgerService *services.LedgerService
	Snapshots     *services.SnapshotService
	DBCheck       func() error
}

// Setup builds repositories and services on db and registers all routes.
// The returned snapshot service is not started; the caller owns its lifecycle.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, log zerolog.Logger) *services.SnapshotService {
	// Initialize repositories
	txRepo := repositories.NewTransactionRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	profileRepo := repositories.NewProfileRepository(db)

	// Initialize services
	ledgerService := services.NewLedgerService(txRepo, accountRepo, loanRepo, profileRepo, log).
		WithCurrency(cfg.Ledger.Currency)
	snapshots := services.NewSnapshotService(ledgerService, cfg.Ledger.SnapshotCron, log)

	Register(app, cfg, Dependencies{
		LedgerService: ledgerService,
		Snapshots:     snapshots,
		DBCheck:       func() error { return config.HealthCheck(db) },
	})

	return snapshots
}

// Register mounts every route on app
func Register(app *fiber.App, cfg *config.Config, deps Dependencies) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, deps.DBCheck, deps.Snapshots)
	ledgerHandler := handlers.NewLedgerHandler(deps.LedgerService)
	dashboardHandler := handlers.NewDashboardHandler(deps.LedgerService, deps.Snapshots, cfg.Ledger.Currency)
	streamHandler := handlers.NewSnapshotStreamHandler(deps.Snapshots)

	// ============================================================
	// Public routes
	// ============================================================
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation (generated by swag init)
	app.Get("/swagger/*", swagger.HandlerDefault)

	// ============================================================
	// API v1 (bearer token required)
	// ============================================================
	api := app.Group("/api/v1")
	api.Get("/", healthHandler.APIInfo)

	protected := api.Group("", middleware.AuthMiddleware(cfg.JWT.Secret))

	// Ledger (members see their own rows, admins may pick a member)
	ledger := protected.Group("/ledger")
	ledger.Get("/transactions", middleware.PrivateCacheHeaders(30*time.Second), ledgerHandler.ListTransactions)
	ledger.Get("/summary", middleware.PrivateCacheHeaders(30*time.Second), ledgerHandler.GetSummary)
	ledger.Post("/summary", ledgerHandler.Summarize)
	ledger.Get("/me", middleware.PrivateCacheHeaders(30*time.Second), ledgerHandler.GetMyOverview)

	// Cooperative dashboard (admin only)
	dashboard := protected.Group("/dashboard", middleware.AdminOnly())
	dashboard.Get("/totals", middleware.NoCacheHeaders(), dashboardHandler.GetTotals)
	dashboard.Get("/portfolio", middleware.NoCacheHeaders(), dashboardHandler.GetPortfolio)
	dashboard.Post("/portfolio", dashboardHandler.ComputePortfolio)
	dashboard.Get("/stream", streamHandler.Stream)
}

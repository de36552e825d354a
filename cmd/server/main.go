package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sacco-ledger/internal/adapters/http/middleware"
	"sacco-ledger/internal/adapters/http/routes"
	"sacco-ledger/internal/adapters/persistence/models"
	"sacco-ledger/internal/config"
	"sacco-ledger/internal/core/services"
	"sacco-ledger/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// @title SACCO Ledger API
// @version 1.0
// @description Read-only ledger aggregation for savings and credit cooperatives

// @BasePath /api/v1
// @schemes https http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.IsDev())
	zlog.Logger = log
	log.Info().Str("mode", cfg.AppMode).Msg("configuration loaded")

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer config.CloseDatabase(db)

	// The ledger tables belong to the core banking store; only dev gets local tables
	if cfg.IsDev() {
		if err := models.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("failed to auto migrate")
		}
		log.Info().Msg("database migration completed")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SACCO Ledger API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg, log)

	// Setup routes
	snapshots := routes.Setup(app, db, cfg, log)

	// Start snapshot scheduler
	snapshots.Subscribe(logSnapshot(log))
	ctx := logger.WithContext(context.Background(), log)
	if err := snapshots.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start snapshot scheduler")
	}
	defer snapshots.Stop()

	// Graceful shutdown
	go gracefulShutdown(app, log)

	// Start server
	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

// logSnapshot records every refreshed snapshot at info level
func logSnapshot(log zerolog.Logger) func(services.Snapshot) {
	return func(s services.Snapshot) {
		log.Info().
			Str("snapshot_id", s.ID).
			Float64("total_sacco_value", s.Totals.TotalSaccoValue).
			Float64("cash_at_hand", s.Totals.CashAtHand).
			Int("active_loans", s.Totals.TotalActiveLoan).
			Float64("repayment_rate", s.Portfolio.RepaymentRate).
			Msg("dashboard snapshot published")
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, log zerolog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped gracefully")
}

package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"pakket-admin/cmd"
	"pakket-admin/internal/data/repository"
	"pakket-admin/internal/wire"
	"pakket-admin/pkg/database"
	"pakket-admin/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.Bool("strict_finalize", config.Reservation.StrictFinalize),
		zap.Bool("status_forward_only", config.Status.ForwardOnly),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err := database.InitSchema(migrateCtx, db)
		cancel()
		if err != nil {
			logger.Fatal("Failed to initialize schema", zap.Error(err))
		}
		logger.Info("Database schema ready")
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)
	go app.Hub.Run(ctx)

	// Clear reservations left over from a previous run
	if released, err := app.Service.Allocation.ReleaseExpiredReservations(ctx); err != nil {
		logger.Warn("Failed to release expired reservations", zap.Error(err))
	} else if released > 0 {
		logger.Info("Released expired reservations", zap.Int64("count", released))
	}

	// Start server
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}

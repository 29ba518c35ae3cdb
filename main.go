// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"movie-catalog/cmd"
	"movie-catalog/internal/adaptor"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/wire"
	"movie-catalog/migrations"
	"movie-catalog/pkg/database"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig(".env")
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
		zap.String("db_driver", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, pinger, closeStore, err := openStore(ctx, config, logger)
	if err != nil {
		logger.Fatal("Failed to open movie store", zap.Error(err))
	}
	defer closeStore()

	// Wire all dependencies
	app := wire.Wiring(repos, pinger, config, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}

// openStore connects the configured store driver and returns its
// repositories, a health pinger and a cleanup func.
func openStore(ctx context.Context, config *utils.Config, logger *zap.Logger) (*repository.Repository, adaptor.Pinger, func(), error) {
	if config.Database.Driver == utils.DriverMemory {
		logger.Warn("Using in-memory movie store, data is lost on exit")
		return repository.NewMemoryRepository(logger), nil, func() {}, nil
	}

	if config.Database.AutoMigrate {
		if err := database.Migrate(config.Database.URL(), migrations.FS, logger); err != nil {
			return nil, nil, nil, err
		}
	}

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Info("Database connected successfully")

	return repository.NewRepository(db, logger), db, db.Close, nil
}

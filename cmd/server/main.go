// Package main implements the entry point for the task API server.
package main

import (
	"context"
	"log"
	"os"

	"taskapi/internal/config"
	"taskapi/internal/platform/logger"
	"taskapi/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, sets up logging and the database, and starts the
// HTTP server. It blocks until shutdown.
func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return err
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		// Mirror the original bootstrap: a dead database is fatal.
		appLogger.Error("Database connection failed", "error", err)
		os.Exit(1)
	}

	if err := postgres.Migrate(ctx, db); err != nil {
		appLogger.Error("Database migration failed", "error", err)
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		os.Exit(1)
	}
	appLogger.Info("Database migrations applied")

	app := newApplication(cfg, appLogger, db)

	return app.Run(ctx)
}

// Package main implements the entry point for the avvai backend, which
// serves Tamil lessons, schedules vocabulary flashcard reviews, and answers
// dictionary lookups through an LLM.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/cloudrumbles/avvai/internal/config"
	"github.com/cloudrumbles/avvai/internal/platform/logger"
	"github.com/cloudrumbles/avvai/internal/platform/sqlite"
)

func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_path", cfg.Database.Path,
		"lessons_dir", cfg.Content.LessonsDir)

	db, err := sqlite.Open(cfg.Database.Path, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		// The database opened but wiring failed; close it before bailing.
		if cerr := db.Close(); cerr != nil {
			appLogger.Error("failed to close database during startup failure", "error", cerr)
		}
		return nil, err
	}

	return app, nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudrumbles/avvai/internal/config"
	"github.com/cloudrumbles/avvai/internal/dictionary"
	"github.com/cloudrumbles/avvai/internal/domain/srs"
	"github.com/cloudrumbles/avvai/internal/lesson"
	"github.com/cloudrumbles/avvai/internal/media"
	"github.com/cloudrumbles/avvai/internal/platform/gemini"
	"github.com/cloudrumbles/avvai/internal/platform/sqlite"
	"github.com/cloudrumbles/avvai/internal/service/auth"
	"github.com/cloudrumbles/avvai/internal/service/review"
	"github.com/cloudrumbles/avvai/internal/store"
)

// application holds the initialized dependencies of the server.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sqlite.DB

	// Stores (using interfaces for proper abstraction)
	cardStateStore store.CardStateStore
	settingsStore  store.SettingsStore
	progressStore  store.ProgressStore
	lessonStore    *lesson.Store
	mediaStore     *media.Store

	// Service interfaces
	reviewService   review.Service
	dictionaryCache *dictionary.Cache
	dictionary      *dictionary.Service
	adminVerifier   auth.AdminVerifier
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// the open database that must be established before application
// initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sqlite.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Stores
	app.cardStateStore = sqlite.NewCardStateStore(db, logger)
	app.settingsStore = sqlite.NewSettingsStore(db, logger)
	app.progressStore = sqlite.NewProgressStore(db, logger)

	lessonStore, err := lesson.NewStore(cfg.Content.LessonsDir, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing lesson store: %w", err)
	}
	app.lessonStore = lessonStore

	mediaStore, err := media.NewStore(cfg.Content.MediaDir, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing media store: %w", err)
	}
	app.mediaStore = mediaStore

	// Review scheduling
	model, err := srs.NewModel(srs.DefaultWeights)
	if err != nil {
		return nil, fmt.Errorf("initializing memory model: %w", err)
	}
	app.reviewService = review.NewService(
		app.lessonStore,
		app.cardStateStore,
		app.settingsStore,
		model,
		logger,
	)

	// Dictionary
	app.dictionaryCache = dictionary.NewCache(cfg.Dictionary.CachePath, logger)
	generator, err := gemini.NewGenerator(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("initializing Gemini generator: %w", err)
	}
	app.dictionary = dictionary.NewService(app.dictionaryCache, generator, logger)

	// Admin auth
	if cfg.Auth.Disabled {
		logger.Warn("admin authentication is DISABLED; all admin requests will be accepted")
		app.adminVerifier = auth.NewDisabledVerifier()
	} else {
		verifier, err := auth.NewAdminVerifier(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("initializing admin verifier: %w", err)
		}
		app.adminVerifier = verifier
	}

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}

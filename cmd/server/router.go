package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cloudrumbles/avvai/internal/api"
	apiMiddleware "github.com/cloudrumbles/avvai/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	flashcardHandler := api.NewFlashcardHandler(app.reviewService, app.config.Scheduler.DueLimit, app.logger)
	lessonHandler := api.NewLessonHandler(app.lessonStore, app.logger)
	progressHandler := api.NewProgressHandler(app.progressStore, app.logger)
	dictionaryHandler := api.NewDictionaryHandler(app.dictionary, app.logger)
	adminHandler := api.NewAdminHandler(app.lessonStore, app.mediaStore, app.dictionaryCache, app.logger)
	adminAuth := apiMiddleware.NewAdminAuthMiddleware(app.adminVerifier)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Flashcard review endpoints
		r.Get("/flashcards/due", flashcardHandler.GetDue)
		r.Post("/flashcards/review", flashcardHandler.SubmitReview)
		r.Get("/flashcards/settings", flashcardHandler.GetSettings)
		r.Post("/flashcards/settings", flashcardHandler.UpdateSettings)

		// Lesson endpoints
		r.Get("/lessons", lessonHandler.List)
		r.Get("/lessons/{id}", lessonHandler.Get)

		// Progress endpoints
		r.Get("/progress", progressHandler.Get)
		r.Post("/progress", progressHandler.Update)

		// Dictionary endpoints
		r.Post("/dictionary/lookup", dictionaryHandler.Lookup)
		r.Post("/lemmatise", dictionaryHandler.Lemmatise)

		// Admin endpoints
		r.Route("/admin", func(r chi.Router) {
			r.Use(adminAuth.Authenticate)

			r.Get("/lessons", adminHandler.ListLessons)
			r.Post("/lessons", adminHandler.CreateLesson)
			r.Get("/lessons/{id}", adminHandler.GetLesson)
			r.Put("/lessons/{id}", adminHandler.UpdateLesson)
			r.Delete("/lessons/{id}", adminHandler.DeleteLesson)

			r.Get("/media", adminHandler.ListMedia)
			r.Post("/media", adminHandler.UploadMedia)
			r.Delete("/media/{filename}", adminHandler.DeleteMedia)

			r.Get("/dictionary-cache", adminHandler.ListCacheEntries)
			r.Post("/dictionary-cache", adminHandler.UpsertCacheEntry)
			r.Post("/dictionary-cache/get", adminHandler.GetCacheEntry)
			r.Delete("/dictionary-cache", adminHandler.DeleteCacheEntry)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

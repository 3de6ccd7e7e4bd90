package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cloudrumbles/avvai/internal/api/shared"
	"github.com/cloudrumbles/avvai/internal/lesson"
	"github.com/cloudrumbles/avvai/internal/platform/logger"
)

// LessonHandler handles read-only lesson HTTP requests
type LessonHandler struct {
	store  *lesson.Store
	logger *slog.Logger
}

// NewLessonHandler creates a new LessonHandler
func NewLessonHandler(store *lesson.Store, logger *slog.Logger) *LessonHandler {
	if store == nil {
		panic("lesson store cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		panic("logger cannot be nil") // ALLOW-PANIC
	}
	return &LessonHandler{
		store:  store,
		logger: logger.With(slog.String("component", "lesson_handler")),
	}
}

// List handles GET /api/lessons requests, returning lesson summaries.
func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	summaries, err := h.store.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("listing lessons", slog.Int("count", len(summaries)))
	shared.RespondWithJSON(w, r, http.StatusOK, summaries)
}

// Get handles GET /api/lessons/{id} requests, returning a full lesson.
func (h *LessonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing lesson id")
		return
	}

	l, err := h.store.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, l)
}

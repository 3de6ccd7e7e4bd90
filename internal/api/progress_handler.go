package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/cloudrumbles/avvai/internal/api/shared"
	"github.com/cloudrumbles/avvai/internal/store"
)

// ProgressUpdateRequest represents the request body for marking lesson completion
type ProgressUpdateRequest struct {
	LessonID  string `json:"lessonId" validate:"required"`
	Completed bool   `json:"completed"`
}

// ProgressHandler handles lesson-completion HTTP requests
type ProgressHandler struct {
	progress store.ProgressStore
	logger   *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler
func NewProgressHandler(progress store.ProgressStore, logger *slog.Logger) *ProgressHandler {
	if progress == nil {
		panic("progress store cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		panic("logger cannot be nil") // ALLOW-PANIC
	}
	return &ProgressHandler{
		progress: progress,
		logger:   logger.With(slog.String("component", "progress_handler")),
	}
}

// Get handles GET /api/progress requests, returning the full completion map.
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	progress, err := h.progress.GetAll(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}

// Update handles POST /api/progress requests, recording lesson completion.
func (h *ProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ProgressUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if strings.TrimSpace(req.LessonID) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "lessonId is required")
		return
	}

	if err := h.progress.Set(r.Context(), req.LessonID, req.Completed); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.logger.Info("lesson progress updated",
		slog.String("lesson_id", req.LessonID),
		slog.Bool("completed", req.Completed))

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

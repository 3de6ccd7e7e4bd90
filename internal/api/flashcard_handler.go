// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cloudrumbles/avvai/internal/api/shared"
	"github.com/cloudrumbles/avvai/internal/domain"
	"github.com/cloudrumbles/avvai/internal/platform/logger"
	"github.com/cloudrumbles/avvai/internal/service/review"
)

// FlashcardResponse represents a single reviewable card
type FlashcardResponse struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// ReviewRequest represents the request body for grading a card
type ReviewRequest struct {
	CardID string `json:"cardId" validate:"required"`
	Rating int    `json:"rating" validate:"required"`
}

// ReviewResponse represents the scheduling outcome returned after a review
type ReviewResponse struct {
	Success      bool   `json:"success"`
	DueDate      string `json:"due_date"`
	IntervalDays int    `json:"interval_days"`
}

// SettingsRequest represents the request body for updating scheduler settings
type SettingsRequest struct {
	DesiredRetention float64 `json:"desiredRetention" validate:"required"`
}

// FlashcardHandler handles flashcard-related HTTP requests
type FlashcardHandler struct {
	reviewService review.Service
	dueLimit      int
	logger        *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler. dueLimit caps due-card
// responses when the request carries no limit parameter; values below 1 fall
// back to the service default.
func NewFlashcardHandler(reviewService review.Service, dueLimit int, logger *slog.Logger) *FlashcardHandler {
	if reviewService == nil {
		panic("review service cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		panic("logger cannot be nil") // ALLOW-PANIC
	}
	if dueLimit < 1 {
		dueLimit = review.DefaultDueLimit
	}
	return &FlashcardHandler{
		reviewService: reviewService,
		dueLimit:      dueLimit,
		logger:        logger.With(slog.String("component", "flashcard_handler")),
	}
}

// GetDue handles GET /api/flashcards/due requests.
// It returns the cards currently due for review, capped by the limit query
// parameter.
func (h *FlashcardHandler) GetDue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	limit := h.dueLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	cards, err := h.reviewService.DueCards(r.Context(), time.Now(), limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]FlashcardResponse, 0, len(cards))
	for _, card := range cards {
		response = append(response, FlashcardResponse{ID: card.ID, Front: card.Front, Back: card.Back})
	}

	log.Debug("returning due cards", slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// SubmitReview handles POST /api/flashcards/review requests.
// It grades a card and returns its next due date.
func (h *FlashcardHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "cardId and rating are required")
		return
	}

	result, err := h.reviewService.SubmitReview(r.Context(), req.CardID, domain.Rating(req.Rating), time.Now())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review accepted",
		slog.String("card_id", req.CardID),
		slog.Int("rating", req.Rating),
		slog.Int("interval_days", result.IntervalDays))

	shared.RespondWithJSON(w, r, http.StatusOK, ReviewResponse{
		Success:      true,
		DueDate:      result.DueDate.Format(time.RFC3339),
		IntervalDays: result.IntervalDays,
	})
}

// GetSettings handles GET /api/flashcards/settings requests.
func (h *FlashcardHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.reviewService.Settings(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// UpdateSettings handles POST /api/flashcards/settings requests.
func (h *FlashcardHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := h.reviewService.UpdateSettings(r.Context(), req.DesiredRetention)
	if err != nil {
		if errors.Is(err, review.ErrInvalidRetention) {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"desiredRetention must be between 0.7 and 0.99")
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

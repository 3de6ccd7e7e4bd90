package api

import (
	"log/slog"
	"net/http"

	"github.com/cloudrumbles/avvai/internal/api/shared"
	"github.com/cloudrumbles/avvai/internal/dictionary"
	"github.com/cloudrumbles/avvai/internal/platform/logger"
)

// WordRequest represents a request carrying a single Tamil word
type WordRequest struct {
	Word string `json:"word"`
}

// LemmaResponse represents the lemmatisation result
type LemmaResponse struct {
	Lemma string `json:"lemma"`
}

// DictionaryHandler handles dictionary HTTP requests
type DictionaryHandler struct {
	service *dictionary.Service
	logger  *slog.Logger
}

// NewDictionaryHandler creates a new DictionaryHandler
func NewDictionaryHandler(service *dictionary.Service, logger *slog.Logger) *DictionaryHandler {
	if service == nil {
		panic("dictionary service cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		panic("logger cannot be nil") // ALLOW-PANIC
	}
	return &DictionaryHandler{
		service: service,
		logger:  logger.With(slog.String("component", "dictionary_handler")),
	}
}

// Lookup handles POST /api/dictionary/lookup requests.
func (h *DictionaryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req WordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	entry, err := h.service.Lookup(r.Context(), req.Word)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("dictionary lookup served", slog.String("word", entry.Word))
	shared.RespondWithJSON(w, r, http.StatusOK, entry)
}

// Lemmatise handles POST /api/lemmatise requests.
func (h *DictionaryHandler) Lemmatise(w http.ResponseWriter, r *http.Request) {
	var req WordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	lemma, err := h.service.Lemmatise(r.Context(), req.Word)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LemmaResponse{Lemma: lemma})
}

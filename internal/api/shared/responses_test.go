package shared

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RespondWithJSON(rec, req, http.StatusCreated, map[string]string{"status": "uploaded"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "uploaded", body["status"])
}

func TestRespondWithErrorIncludesTraceID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	rec := httptest.NewRecorder()
	RespondWithError(rec, req, http.StatusBadRequest, "Invalid request format")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Invalid request format", body.Error)
	assert.NotEmpty(t, body.TraceID)
	assert.Equal(t, GetTraceID(req.Context()), body.TraceID)
}

func TestRespondWithErrorOmitsMissingTraceID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RespondWithError(rec, req, http.StatusNotFound, "Not found")

	assert.NotContains(t, rec.Body.String(), "trace_id")
}

func TestRespondWithErrorAndLogHidesInternalError(t *testing.T) {
	t.Parallel()

	internal := assert.AnError
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "Storage error", internal)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Storage error")
	assert.NotContains(t, rec.Body.String(), internal.Error())
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"word": "வணக்கம்"}`))

	var body struct {
		Word string `json:"word"`
	}
	require.NoError(t, DecodeJSON(req, &body))
	assert.Equal(t, "வணக்கம்", body.Word)
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	type reviewBody struct {
		CardID string `validate:"required"`
		Rating int    `validate:"required"`
	}

	assert.NoError(t, ValidateRequest(reviewBody{CardID: "intro:vocab:0", Rating: 3}))
	assert.Error(t, ValidateRequest(reviewBody{Rating: 3}))
	assert.Error(t, ValidateRequest(reviewBody{CardID: "intro:vocab:0"}))
}

func TestGetTraceIDWithoutValue(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))
}

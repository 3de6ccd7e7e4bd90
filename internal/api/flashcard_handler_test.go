package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudrumbles/avvai/internal/domain"
	"github.com/cloudrumbles/avvai/internal/service/review"
	"github.com/cloudrumbles/avvai/internal/store"
)

// fakeReviewService scripts the review service for handler tests.
type fakeReviewService struct {
	dueCards     []domain.Flashcard
	dueErr       error
	gotLimit     int
	reviewResult *review.ReviewResult
	reviewErr    error
	gotCardID    string
	gotRating    domain.Rating
	settings     review.Settings
	settingsErr  error
	updateErr    error
	gotRetention float64
}

func (f *fakeReviewService) DueCards(_ context.Context, _ time.Time, limit int) ([]domain.Flashcard, error) {
	f.gotLimit = limit
	if f.dueErr != nil {
		return nil, f.dueErr
	}
	return f.dueCards, nil
}

func (f *fakeReviewService) SubmitReview(_ context.Context, cardID string, rating domain.Rating, _ time.Time) (*review.ReviewResult, error) {
	f.gotCardID = cardID
	f.gotRating = rating
	if f.reviewErr != nil {
		return nil, f.reviewErr
	}
	return f.reviewResult, nil
}

func (f *fakeReviewService) Settings(_ context.Context) (review.Settings, error) {
	if f.settingsErr != nil {
		return review.Settings{}, f.settingsErr
	}
	return f.settings, nil
}

func (f *fakeReviewService) UpdateSettings(_ context.Context, desiredRetention float64) error {
	f.gotRetention = desiredRetention
	return f.updateErr
}

func testHandlerLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetDue(t *testing.T) {
	t.Parallel()

	svc := &fakeReviewService{
		dueCards: []domain.Flashcard{
			{ID: "intro:vocab:0", Front: "வணக்கம்", Back: "hello"},
			{ID: "intro:vocab:1", Front: "நன்றி", Back: "thank you"},
		},
	}
	handler := NewFlashcardHandler(svc, 0, testHandlerLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/flashcards/due", nil)
	rec := httptest.NewRecorder()
	handler.GetDue(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var cards []FlashcardResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cards))
	require.Len(t, cards, 2)
	assert.Equal(t, "intro:vocab:0", cards[0].ID)
	assert.Equal(t, "வணக்கம்", cards[0].Front)
	assert.Equal(t, review.DefaultDueLimit, svc.gotLimit,
		"absent limit falls back to the default cap")
}

func TestGetDueUsesConfiguredDefaultLimit(t *testing.T) {
	t.Parallel()

	svc := &fakeReviewService{}
	handler := NewFlashcardHandler(svc, 12, testHandlerLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/flashcards/due", nil)
	rec := httptest.NewRecorder()
	handler.GetDue(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 12, svc.gotLimit)

	// An explicit limit still wins over the configured default.
	req = httptest.NewRequest(http.MethodGet, "/api/flashcards/due?limit=3", nil)
	rec = httptest.NewRecorder()
	handler.GetDue(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, svc.gotLimit)
}

func TestGetDueLimitParameter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLimit  int
	}{
		{name: "explicit limit", query: "?limit=5", wantStatus: http.StatusOK, wantLimit: 5},
		{name: "zero limit rejected", query: "?limit=0", wantStatus: http.StatusBadRequest},
		{name: "negative limit rejected", query: "?limit=-3", wantStatus: http.StatusBadRequest},
		{name: "non-numeric limit rejected", query: "?limit=many", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &fakeReviewService{}
			handler := NewFlashcardHandler(svc, 0, testHandlerLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/flashcards/due"+tt.query, nil)
			rec := httptest.NewRecorder()
			handler.GetDue(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantLimit, svc.gotLimit)
			}
		})
	}
}

func TestGetDueEmptySetIsJSONArray(t *testing.T) {
	t.Parallel()

	handler := NewFlashcardHandler(&fakeReviewService{}, 0, testHandlerLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/flashcards/due", nil)
	rec := httptest.NewRecorder()
	handler.GetDue(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetDueStorageFailure(t *testing.T) {
	t.Parallel()

	svc := &fakeReviewService{dueErr: store.ErrStorageUnavailable}
	handler := NewFlashcardHandler(svc, 0, testHandlerLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/flashcards/due", nil)
	rec := httptest.NewRecorder()
	handler.GetDue(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSubmitReview(t *testing.T) {
	t.Parallel()

	due := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	svc := &fakeReviewService{
		reviewResult: &review.ReviewResult{DueDate: due, IntervalDays: 3},
	}
	handler := NewFlashcardHandler(svc, 0, testHandlerLogger())

	body := `{"cardId": "intro:vocab:0", "rating": 3}`
	req := httptest.NewRequest(http.MethodPost, "/api/flashcards/review", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.SubmitReview(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReviewResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, due.Format(time.RFC3339), resp.DueDate)
	assert.Equal(t, 3, resp.IntervalDays)

	assert.Equal(t, "intro:vocab:0", svc.gotCardID)
	assert.Equal(t, domain.RatingGood, svc.gotRating)
}

func TestSubmitReviewBadRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"cardId": `},
		{name: "missing card id", body: `{"rating": 3}`},
		{name: "missing rating", body: `{"cardId": "intro:vocab:0"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := NewFlashcardHandler(&fakeReviewService{}, 0, testHandlerLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/flashcards/review", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.SubmitReview(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSubmitReviewInvalidRatingValue(t *testing.T) {
	t.Parallel()

	svc := &fakeReviewService{reviewErr: review.ErrInvalidRating}
	handler := NewFlashcardHandler(svc, 0, testHandlerLogger())

	body := `{"cardId": "intro:vocab:0", "rating": 99}`
	req := httptest.NewRequest(http.MethodPost, "/api/flashcards/review", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.SubmitReview(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitReviewConfigurationFault(t *testing.T) {
	t.Parallel()

	svc := &fakeReviewService{reviewErr: review.ErrInvalidConfiguration}
	handler := NewFlashcardHandler(svc, 0, testHandlerLogger())

	body := `{"cardId": "intro:vocab:0", "rating": 3}`
	req := httptest.NewRequest(http.MethodPost, "/api/flashcards/review", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.SubmitReview(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetSettings(t *testing.T) {
	t.Parallel()

	svc := &fakeReviewService{settings: review.Settings{DesiredRetention: 0.9}}
	handler := NewFlashcardHandler(svc, 0, testHandlerLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/flashcards/settings", nil)
	rec := httptest.NewRecorder()
	handler.GetSettings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp review.Settings
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.InDelta(t, 0.9, resp.DesiredRetention, 1e-9)
}

func TestUpdateSettings(t *testing.T) {
	t.Parallel()

	svc := &fakeReviewService{}
	handler := NewFlashcardHandler(svc, 0, testHandlerLogger())

	body := `{"desiredRetention": 0.85}`
	req := httptest.NewRequest(http.MethodPost, "/api/flashcards/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.UpdateSettings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 0.85, svc.gotRetention, 1e-9)
}

func TestUpdateSettingsOutOfRange(t *testing.T) {
	t.Parallel()

	svc := &fakeReviewService{updateErr: review.ErrInvalidRetention}
	handler := NewFlashcardHandler(svc, 0, testHandlerLogger())

	body := `{"desiredRetention": 0.5}`
	req := httptest.NewRequest(http.MethodPost, "/api/flashcards/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.UpdateSettings(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

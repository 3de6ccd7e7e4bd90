// Package review implements the spaced-repetition review workflow: selecting
// the cards that are due for study and updating scheduling state when a card
// is reviewed.
package review

import (
	"context"
	"errors"
	"time"

	"github.com/cloudrumbles/avvai/internal/domain"
)

// DefaultDueLimit bounds the due-card response when the caller does not ask
// for a specific size.
const DefaultDueLimit = 30

// Service-specific errors for review operations.
var (
	// ErrInvalidRating indicates the submitted rating is outside 1-4.
	ErrInvalidRating = errors.New("rating must be between 1 (again) and 4 (easy)")

	// ErrInvalidRetention indicates a requested desired retention outside the
	// supported range.
	ErrInvalidRetention = errors.New("desired retention must be between 0.7 and 0.99")

	// ErrInvalidConfiguration indicates the persisted scheduler settings were
	// rejected by the memory model. This is a server-side fault, not a
	// problem with the caller's request.
	ErrInvalidConfiguration = errors.New("scheduler configuration is invalid")
)

// ReviewResult describes the scheduling outcome of a single review.
type ReviewResult struct {
	// DueDate is when the card next becomes due.
	DueDate time.Time

	// IntervalDays is the number of days until the card is due again.
	IntervalDays int
}

// Settings is the caller-visible scheduler configuration.
type Settings struct {
	DesiredRetention float64 `json:"desired_retention"`
}

// CardSource enumerates the universe of reviewable flashcards.
type CardSource interface {
	EnumerateVocabularyCards(ctx context.Context) ([]domain.Flashcard, error)
}

// Service defines the review workflow operations.
type Service interface {
	// DueCards returns up to limit cards that are due at now, in card
	// universe order. A non-positive limit selects DefaultDueLimit.
	DueCards(ctx context.Context, now time.Time, limit int) ([]domain.Flashcard, error)

	// SubmitReview grades a card and persists its next scheduling state.
	// Returns ErrInvalidRating for ratings outside 1-4. No state is written
	// when an error is returned.
	SubmitReview(ctx context.Context, cardID string, rating domain.Rating, now time.Time) (*ReviewResult, error)

	// Settings returns the current scheduler settings.
	Settings(ctx context.Context) (Settings, error)

	// UpdateSettings replaces the desired retention. Returns
	// ErrInvalidRetention when the value is outside [0.7, 0.99].
	UpdateSettings(ctx context.Context, desiredRetention float64) error
}

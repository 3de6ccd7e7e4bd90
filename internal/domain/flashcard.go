package domain

import (
	"fmt"
	"time"
)

// Flashcard is a reviewable card derived from lesson vocabulary.
// Cards are never stored: identity and content are recomputed from lesson
// files on demand, so a card's lifecycle is bound to its lesson's.
// The ID format is "<lesson_id>:vocab:<index>".
type Flashcard struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// VocabCardID builds the deterministic card ID for the entry at the given
// index of a lesson's vocabulary.
func VocabCardID(lessonID string, index int) string {
	return fmt.Sprintf("%s:vocab:%d", lessonID, index)
}

// Rating is the user's assessment of recall quality, graded 1-4.
type Rating int

// Rating grades, from complete lapse to effortless recall.
const (
	RatingAgain Rating = iota + 1
	RatingHard
	RatingGood
	RatingEasy
)

// IsValid reports whether r is a valid rating grade.
func (r Rating) IsValid() bool {
	return r >= RatingAgain && r <= RatingEasy
}

// CardState is the persisted scheduling record for one card, created
// lazily on first review. Absence means "never reviewed" and is treated
// as immediately due.
type CardState struct {
	// Stability is the forgetting-curve stability parameter in days.
	// Positive once a review has occurred.
	Stability float64

	// Difficulty is the model's item-difficulty parameter, within [1, 10].
	Difficulty float64

	// LastReview is the instant of the most recent review, nil before the
	// first review. Always UTC.
	LastReview *time.Time

	// DueDate is the instant at or after which the card is eligible for
	// re-presentation. Nil means immediately due. Always UTC.
	DueDate *time.Time

	// IntervalDays is the scheduled gap used to compute DueDate, kept for
	// display and audit. At least 1 once scheduled.
	IntervalDays int
}

// Validate checks the invariants of a persisted card state: positive
// stability, difficulty within the model range, an interval of at least
// one day, and DueDate equal to LastReview plus IntervalDays days.
func (s *CardState) Validate() error {
	if s.Stability <= 0 {
		return fmt.Errorf("%w: stability must be positive, got %f", ErrValidation, s.Stability)
	}
	if s.Difficulty < 1 || s.Difficulty > 10 {
		return fmt.Errorf("%w: difficulty must be within [1, 10], got %f", ErrValidation, s.Difficulty)
	}
	if s.IntervalDays < 1 {
		return fmt.Errorf("%w: interval must be at least 1 day, got %d", ErrValidation, s.IntervalDays)
	}
	if s.LastReview != nil && s.DueDate != nil {
		expected := s.LastReview.AddDate(0, 0, s.IntervalDays)
		if !s.DueDate.Equal(expected) {
			return fmt.Errorf("%w: due date %s does not equal last review + %d days",
				ErrValidation, s.DueDate.Format(time.RFC3339), s.IntervalDays)
		}
	}
	return nil
}

// ElapsedDays returns the whole days between the last review and now,
// clamped at zero. Returns 0 for a never-reviewed card. Sub-day precision
// is intentionally discarded: the scheduler works in calendar-day
// granularity.
func (s *CardState) ElapsedDays(now time.Time) int {
	if s == nil || s.LastReview == nil {
		return 0
	}
	days := int(now.Sub(*s.LastReview).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

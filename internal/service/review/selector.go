package review

import (
	"time"

	"github.com/cloudrumbles/avvai/internal/domain"
)

// selectDue filters cards down to those due at now, preserving card order.
//
// A card is due when it has no scheduling state (never reviewed), when its
// state carries no due date, or when its due date is at or before now. The
// result is truncated at limit.
func selectDue(cards []domain.Flashcard, states map[string]domain.CardState, now time.Time, limit int) []domain.Flashcard {
	due := make([]domain.Flashcard, 0, limit)
	for _, card := range cards {
		if len(due) >= limit {
			break
		}
		state, ok := states[card.ID]
		if !ok || state.DueDate == nil || !state.DueDate.After(now) {
			due = append(due, card)
		}
	}
	return due
}

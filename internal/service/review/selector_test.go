package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cloudrumbles/avvai/internal/domain"
)

func fc(id string) domain.Flashcard {
	return domain.Flashcard{ID: id, Front: id, Back: "meaning"}
}

func stateDue(due time.Time) domain.CardState {
	last := due.AddDate(0, 0, -1)
	return domain.CardState{
		Stability:    2.5,
		Difficulty:   5.0,
		LastReview:   &last,
		DueDate:      &due,
		IntervalDays: 1,
	}
}

func TestSelectDue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	cards := []domain.Flashcard{fc("a:vocab:0"), fc("a:vocab:1"), fc("b:vocab:0"), fc("b:vocab:1")}

	tests := []struct {
		name   string
		states map[string]domain.CardState
		limit  int
		want   []string
	}{
		{
			name:   "never reviewed cards are all due",
			states: map[string]domain.CardState{},
			limit:  10,
			want:   []string{"a:vocab:0", "a:vocab:1", "b:vocab:0", "b:vocab:1"},
		},
		{
			name: "future due dates are excluded",
			states: map[string]domain.CardState{
				"a:vocab:0": stateDue(now.AddDate(0, 0, 3)),
				"b:vocab:0": stateDue(now.Add(time.Minute)),
			},
			limit: 10,
			want:  []string{"a:vocab:1", "b:vocab:1"},
		},
		{
			name: "due date exactly now counts as due",
			states: map[string]domain.CardState{
				"a:vocab:0": stateDue(now),
			},
			limit: 10,
			want:  []string{"a:vocab:0", "a:vocab:1", "b:vocab:0", "b:vocab:1"},
		},
		{
			name: "past due dates are included",
			states: map[string]domain.CardState{
				"a:vocab:1": stateDue(now.AddDate(0, 0, -2)),
			},
			limit: 10,
			want:  []string{"a:vocab:0", "a:vocab:1", "b:vocab:0", "b:vocab:1"},
		},
		{
			name: "state without due date counts as due",
			states: map[string]domain.CardState{
				"a:vocab:0": {Stability: 1.0, Difficulty: 5.0, IntervalDays: 1},
			},
			limit: 10,
			want:  []string{"a:vocab:0", "a:vocab:1", "b:vocab:0", "b:vocab:1"},
		},
		{
			name:   "limit truncates in card order",
			states: map[string]domain.CardState{},
			limit:  2,
			want:   []string{"a:vocab:0", "a:vocab:1"},
		},
		{
			name:   "zero limit yields nothing",
			states: map[string]domain.CardState{},
			limit:  0,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := selectDue(cards, tt.states, now, tt.limit)

			ids := make([]string, 0, len(got))
			for _, card := range got {
				ids = append(ids, card.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSelectDueEmptyUniverse(t *testing.T) {
	t.Parallel()

	got := selectDue(nil, map[string]domain.CardState{}, time.Now(), 30)
	assert.Empty(t, got)
}

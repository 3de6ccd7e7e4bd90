package srs

import (
	"errors"
	"testing"

	"github.com/cloudrumbles/avvai/internal/domain"
)

func TestNextStatesFirstReview(t *testing.T) {
	t.Parallel()
	m := NewDefaultModel()

	states, err := m.NextStates(nil, 0.9, 0)
	if err != nil {
		t.Fatalf("NextStates returned error: %v", err)
	}

	for _, tc := range []struct {
		name string
		item ItemState
	}{
		{"again", states.Again},
		{"hard", states.Hard},
		{"good", states.Good},
		{"easy", states.Easy},
	} {
		if tc.item.Stability <= 0 {
			t.Errorf("%s: expected positive stability, got %f", tc.name, tc.item.Stability)
		}
		if tc.item.Difficulty < 1 || tc.item.Difficulty > 10 {
			t.Errorf("%s: difficulty %f out of [1, 10]", tc.name, tc.item.Difficulty)
		}
		if tc.item.IntervalDays < 1 {
			t.Errorf("%s: interval %d below 1", tc.name, tc.item.IntervalDays)
		}
	}

	// First-review stability follows the per-grade initial weights:
	// strictly increasing from Again to Easy.
	if !(states.Again.Stability < states.Hard.Stability &&
		states.Hard.Stability < states.Good.Stability &&
		states.Good.Stability < states.Easy.Stability) {
		t.Errorf("expected strictly increasing initial stability, got %f %f %f %f",
			states.Again.Stability, states.Hard.Stability,
			states.Good.Stability, states.Easy.Stability)
	}
}

func TestNextStatesSuccessfulRecallGrowsStability(t *testing.T) {
	t.Parallel()
	m := NewDefaultModel()

	prev := &MemoryState{Stability: 10, Difficulty: 5}
	states, err := m.NextStates(prev, 0.9, 10)
	if err != nil {
		t.Fatalf("NextStates returned error: %v", err)
	}

	for _, tc := range []struct {
		name string
		item ItemState
	}{
		{"hard", states.Hard},
		{"good", states.Good},
		{"easy", states.Easy},
	} {
		if tc.item.Stability < prev.Stability {
			t.Errorf("%s: stability decreased on success: %f -> %f",
				tc.name, prev.Stability, tc.item.Stability)
		}
	}

	// A lapse must shrink stability.
	if states.Again.Stability >= prev.Stability {
		t.Errorf("again: expected stability below %f, got %f",
			prev.Stability, states.Again.Stability)
	}
}

func TestNextStatesSameDayReview(t *testing.T) {
	t.Parallel()
	m := NewDefaultModel()

	prev := &MemoryState{Stability: 5, Difficulty: 6}
	states, err := m.NextStates(prev, 0.9, 0)
	if err != nil {
		t.Fatalf("NextStates returned error: %v", err)
	}

	// Good/Easy same-day reviews never shrink stability.
	if states.Good.Stability < prev.Stability {
		t.Errorf("good same-day review shrank stability: %f -> %f",
			prev.Stability, states.Good.Stability)
	}
	if states.Easy.Stability < prev.Stability {
		t.Errorf("easy same-day review shrank stability: %f -> %f",
			prev.Stability, states.Easy.Stability)
	}
}

func TestNextStatesRetentionSizesInterval(t *testing.T) {
	t.Parallel()
	m := NewDefaultModel()
	prev := &MemoryState{Stability: 20, Difficulty: 5}

	low, err := m.NextStates(prev, 0.7, 20)
	if err != nil {
		t.Fatalf("NextStates(0.7) returned error: %v", err)
	}
	high, err := m.NextStates(prev, 0.99, 20)
	if err != nil {
		t.Fatalf("NextStates(0.99) returned error: %v", err)
	}

	// Lower desired retention means longer intervals.
	if low.Good.IntervalDays <= high.Good.IntervalDays {
		t.Errorf("expected interval at retention 0.7 (%d) to exceed interval at 0.99 (%d)",
			low.Good.IntervalDays, high.Good.IntervalDays)
	}
}

func TestNextStatesRejectsBadInputs(t *testing.T) {
	t.Parallel()
	m := NewDefaultModel()

	testCases := []struct {
		name      string
		retention float64
		elapsed   int
		wantErr   error
	}{
		{"retention below range", 0.5, 0, ErrInvalidRetention},
		{"retention above range", 0.995, 0, ErrInvalidRetention},
		{"retention zero", 0, 0, ErrInvalidRetention},
		{"negative elapsed", 0.9, -1, ErrInvalidElapsed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := m.NextStates(nil, tc.retention, tc.elapsed)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNewModelValidatesWeights(t *testing.T) {
	t.Parallel()

	bad := DefaultWeights
	bad[4] = 99 // difficulty base far out of bounds

	if _, err := NewModel(bad); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("expected ErrInvalidParameters, got %v", err)
	}

	if _, err := NewModel(DefaultWeights); err != nil {
		t.Errorf("default weights rejected: %v", err)
	}
}

func TestForRating(t *testing.T) {
	t.Parallel()

	states := SchedulingStates{
		Again: ItemState{IntervalDays: 1},
		Hard:  ItemState{IntervalDays: 2},
		Good:  ItemState{IntervalDays: 3},
		Easy:  ItemState{IntervalDays: 4},
	}

	testCases := []struct {
		rating   domain.Rating
		expected int
	}{
		{domain.RatingAgain, 1},
		{domain.RatingHard, 2},
		{domain.RatingGood, 3},
		{domain.RatingEasy, 4},
	}

	for _, tc := range testCases {
		if got := states.ForRating(tc.rating).IntervalDays; got != tc.expected {
			t.Errorf("ForRating(%d): expected interval %d, got %d", tc.rating, tc.expected, got)
		}
	}
}

func TestIntervalFlooredAtOne(t *testing.T) {
	t.Parallel()
	m := NewDefaultModel()

	// Tiny stability with high retention produces a sub-day raw interval.
	states, err := m.NextStates(&MemoryState{Stability: 0.01, Difficulty: 9}, 0.99, 1)
	if err != nil {
		t.Fatalf("NextStates returned error: %v", err)
	}
	if states.Again.IntervalDays < 1 {
		t.Errorf("interval %d below floor of 1", states.Again.IntervalDays)
	}
}

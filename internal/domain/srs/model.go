// Package srs implements the FSRS forgetting-curve memory model used to
// schedule flashcard reviews. The model is pure: given a previous memory
// state, a desired retention and the elapsed days since the last review,
// it computes the candidate next states for all four rating grades. It
// holds no mutable state and performs no I/O.
package srs

import (
	"errors"
	"fmt"
	"math"

	"github.com/cloudrumbles/avvai/internal/domain"
)

// Desired retention must stay within this range; outside it the interval
// formula degenerates (intervals explode toward low retention and collapse
// toward 1.0).
const (
	MinRetention = 0.7
	MaxRetention = 0.99
)

// maxIntervalDays caps scheduling at roughly one hundred years.
const maxIntervalDays = 36500

// Model errors.
var (
	// ErrInvalidParameters is returned when a parameter vector is out of bounds.
	ErrInvalidParameters = errors.New("srs: parameters out of bounds")

	// ErrInvalidRetention is returned when desired retention is outside
	// [MinRetention, MaxRetention].
	ErrInvalidRetention = errors.New("srs: desired retention out of range")

	// ErrInvalidElapsed is returned when elapsed days is negative. Callers
	// are expected to clamp with max(0, wholeDays) before invoking the model.
	ErrInvalidElapsed = errors.New("srs: elapsed days cannot be negative")
)

// MemoryState is the pair of model parameters persisted per card.
type MemoryState struct {
	Stability  float64
	Difficulty float64
}

// ItemState is one candidate outcome of a review: the next memory state
// and the scheduled interval derived from it.
type ItemState struct {
	Stability    float64
	Difficulty   float64
	IntervalDays int
}

// Memory returns the memory-state portion of the item state.
func (s ItemState) Memory() MemoryState {
	return MemoryState{Stability: s.Stability, Difficulty: s.Difficulty}
}

// SchedulingStates holds the candidate outcome for each rating grade.
type SchedulingStates struct {
	Again ItemState
	Hard  ItemState
	Good  ItemState
	Easy  ItemState
}

// ForRating returns the outcome matching the given rating grade.
// The rating must be valid; callers validate before selecting.
func (s SchedulingStates) ForRating(r domain.Rating) ItemState {
	switch r {
	case domain.RatingAgain:
		return s.Again
	case domain.RatingHard:
		return s.Hard
	case domain.RatingEasy:
		return s.Easy
	default:
		return s.Good
	}
}

// Model evaluates FSRS state transitions for a fixed parameter vector.
// decay and factor are precomputed from the weights.
type Model struct {
	w      Weights
	decay  float64 // -w[20]
	factor float64 // 0.9^(1/decay) - 1
}

// NewModel creates a Model from the given parameter vector.
// Returns ErrInvalidParameters if any weight is out of bounds.
func NewModel(w Weights) (*Model, error) {
	if err := validateWeights(w); err != nil {
		return nil, err
	}
	decay := -w[20]
	return &Model{
		w:      w,
		decay:  decay,
		factor: math.Pow(0.9, 1.0/decay) - 1.0,
	}, nil
}

// NewDefaultModel creates a Model with the default parameter vector.
func NewDefaultModel() *Model {
	m, err := NewModel(DefaultWeights)
	if err != nil {
		// Defaults are within bounds by construction.
		// ALLOW-PANIC: invariant of the package's own constants
		panic(fmt.Sprintf("srs: default weights rejected: %v", err))
	}
	return m
}

// NextStates computes the four candidate outcomes of reviewing a card now.
//
// prev is nil for a first-ever review, in which case stability and
// difficulty are initialized from the parameter vector rather than
// extrapolated from history. elapsedDays is the whole days since the
// previous review (0 for a first review or a same-day review).
//
// Returns ErrInvalidRetention if desiredRetention is outside
// [MinRetention, MaxRetention] and ErrInvalidElapsed if elapsedDays is
// negative.
func (m *Model) NextStates(
	prev *MemoryState,
	desiredRetention float64,
	elapsedDays int,
) (SchedulingStates, error) {
	if desiredRetention < MinRetention || desiredRetention > MaxRetention {
		return SchedulingStates{}, fmt.Errorf("%w: %f not in [%g, %g]",
			ErrInvalidRetention, desiredRetention, MinRetention, MaxRetention)
	}
	if elapsedDays < 0 {
		return SchedulingStates{}, fmt.Errorf("%w: %d", ErrInvalidElapsed, elapsedDays)
	}

	ratings := [4]domain.Rating{
		domain.RatingAgain, domain.RatingHard, domain.RatingGood, domain.RatingEasy,
	}
	var out [4]ItemState
	for i, r := range ratings {
		mem := m.nextMemory(prev, r, elapsedDays)
		out[i] = ItemState{
			Stability:    mem.Stability,
			Difficulty:   mem.Difficulty,
			IntervalDays: m.nextInterval(mem.Stability, desiredRetention),
		}
	}

	return SchedulingStates{Again: out[0], Hard: out[1], Good: out[2], Easy: out[3]}, nil
}

// nextMemory computes the next stability/difficulty pair for one rating.
func (m *Model) nextMemory(prev *MemoryState, r domain.Rating, elapsedDays int) MemoryState {
	if prev == nil {
		return MemoryState{
			Stability:  m.initStability(r),
			Difficulty: m.initDifficulty(r, true),
		}
	}

	var stability float64
	if elapsedDays < 1 {
		// Same-day review: short-term stability update.
		stability = m.shortTermStability(prev.Stability, r)
	} else {
		retr := m.retrievability(float64(elapsedDays), prev.Stability)
		stability = m.nextStability(prev.Difficulty, prev.Stability, retr, r)
	}
	return MemoryState{
		Stability:  stability,
		Difficulty: m.nextDifficulty(prev.Difficulty, r),
	}
}

// retrievability computes R(t, S) = (1 + FACTOR * t / S) ^ DECAY.
func (m *Model) retrievability(elapsedDays, stability float64) float64 {
	return math.Pow(1+m.factor*elapsedDays/stability, m.decay)
}

// initStability returns the initial stability S₀(G) = clamp_s(w[G-1]).
func (m *Model) initStability(r domain.Rating) float64 {
	return clampStability(m.w[r-1])
}

// initDifficulty returns the initial difficulty D₀(G) = w[4] - e^(w[5]*(G-1)) + 1.
func (m *Model) initDifficulty(r domain.Rating, clamp bool) float64 {
	d := m.w[4] - math.Exp(m.w[5]*float64(r-1)) + 1
	if clamp {
		return clampDifficulty(d)
	}
	return d
}

// nextInterval computes the next review interval in days:
// I(r, S) = round((S / FACTOR) * (r^(1/DECAY) - 1)), clamped to [1, maxIntervalDays].
func (m *Model) nextInterval(stability, desiredRetention float64) int {
	ivl := stability / m.factor * (math.Pow(desiredRetention, 1.0/m.decay) - 1)
	rounded := int(math.Round(ivl))
	if rounded < 1 {
		rounded = 1
	}
	if rounded > maxIntervalDays {
		rounded = maxIntervalDays
	}
	return rounded
}

// shortTermStability computes the same-day review stability:
// S' = clamp_s(S * e^(w[17] * (G - 3 + w[18])) * S^(-w[19])), with the
// increase floored at 1.0 for Good and Easy.
func (m *Model) shortTermStability(stability float64, r domain.Rating) float64 {
	sInc := math.Exp(m.w[17]*(float64(r)-3+m.w[18])) * math.Pow(stability, -m.w[19])
	if r == domain.RatingGood || r == domain.RatingEasy {
		sInc = math.Max(sInc, 1.0)
	}
	return clampStability(stability * sInc)
}

// nextDifficulty computes the updated difficulty after a review:
// linear damping toward the rating's pull, then mean reversion toward
// D₀(Easy), clamped to [1, 10].
func (m *Model) nextDifficulty(difficulty float64, r domain.Rating) float64 {
	deltaD := -m.w[6] * (float64(r) - 3)
	dPrime := difficulty + (10-difficulty)*deltaD/9
	d0Easy := m.initDifficulty(domain.RatingEasy, false)
	return clampDifficulty(m.w[7]*d0Easy + (1-m.w[7])*dPrime)
}

// nextStability dispatches to the recall or forget branch.
func (m *Model) nextStability(d, s, retr float64, r domain.Rating) float64 {
	if r == domain.RatingAgain {
		return m.nextForgetStability(d, s, retr)
	}
	return m.nextRecallStability(d, s, retr, r)
}

// nextRecallStability computes stability after a successful recall:
// S'_r = S * (1 + e^w[8] * (11-D) * S^(-w[9]) * (e^((1-R)*w[10]) - 1) *
// hardPenalty * easyBonus). The growth term is non-negative, so stability
// never decreases on success.
func (m *Model) nextRecallStability(d, s, retr float64, r domain.Rating) float64 {
	hardPenalty := 1.0
	if r == domain.RatingHard {
		hardPenalty = m.w[15]
	}
	easyBonus := 1.0
	if r == domain.RatingEasy {
		easyBonus = m.w[16]
	}
	return s * (1 + math.Exp(m.w[8])*
		(11-d)*
		math.Pow(s, -m.w[9])*
		(math.Exp((1-retr)*m.w[10])-1)*
		hardPenalty*easyBonus)
}

// nextForgetStability computes stability after a lapse:
// the minimum of the long-term forget formula and the short-term bound.
func (m *Model) nextForgetStability(d, s, retr float64) float64 {
	long := m.w[11] *
		math.Pow(d, -m.w[12]) *
		(math.Pow(s+1, m.w[13]) - 1) *
		math.Exp((1-retr)*m.w[14])
	short := s / math.Exp(m.w[17]*m.w[18])
	return math.Min(long, short)
}

// clampStability clamps stability to a minimum of 0.001.
func clampStability(s float64) float64 {
	return math.Max(s, 0.001)
}

// clampDifficulty clamps difficulty to [1, 10].
func clampDifficulty(d float64) float64 {
	return math.Min(math.Max(d, 1), 10)
}

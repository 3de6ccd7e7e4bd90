// Package store defines the persistence interfaces consumed by the
// service layer, along with the sentinel errors implementations return.
// Concrete implementations live under internal/platform.
package store

import (
	"context"

	"github.com/cloudrumbles/avvai/internal/domain"
)

// CardStateStore defines the interface for flashcard scheduling-state
// persistence. One record exists per card ID, created lazily by the first
// Upsert; absence of a record means the card has never been reviewed.
type CardStateStore interface {
	// Get retrieves the scheduling state for a single card.
	// Returns ErrCardStateNotFound if no state is stored for the ID.
	// Returns ErrCorruptRecord if the stored row cannot be parsed.
	Get(ctx context.Context, cardID string) (*domain.CardState, error)

	// GetAll retrieves every stored card state keyed by card ID.
	// Rows that cannot be parsed are skipped and logged, not returned as
	// errors: a single corrupt row must not take down due-set selection.
	GetAll(ctx context.Context) (map[string]domain.CardState, error)

	// Upsert atomically writes the scheduling state for a card,
	// replacing any existing record with the same ID.
	Upsert(ctx context.Context, cardID string, state domain.CardState) error
}

// SettingsStore defines the interface for the global scheduler settings.
// There is a single desired-retention value for the whole card space.
type SettingsStore interface {
	// DesiredRetention returns the stored desired retention, or the
	// default (0.9) when no value has been written yet.
	DesiredRetention(ctx context.Context) (float64, error)

	// SetDesiredRetention stores the desired retention value. Range
	// validation is the caller's responsibility; the store persists what
	// it is given.
	SetDesiredRetention(ctx context.Context, value float64) error
}

// ProgressStore defines the interface for lesson completion tracking.
type ProgressStore interface {
	// GetAll returns the completion flag for every lesson that has one.
	GetAll(ctx context.Context) (map[string]bool, error)

	// Set records whether a lesson has been completed.
	Set(ctx context.Context, lessonID string, completed bool) error
}

package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudrumbles/avvai/internal/domain"
	"github.com/cloudrumbles/avvai/internal/domain/srs"
	"github.com/cloudrumbles/avvai/internal/store"
)

// serviceImpl orchestrates the card source, the memory model and the state
// store. The model itself is pure; all persistence goes through the stores.
type serviceImpl struct {
	source   CardSource
	cards    store.CardStateStore
	settings store.SettingsStore
	model    *srs.Model
	logger   *slog.Logger
}

var _ Service = (*serviceImpl)(nil)

// NewService creates the review service.
func NewService(
	source CardSource,
	cards store.CardStateStore,
	settings store.SettingsStore,
	model *srs.Model,
	logger *slog.Logger,
) Service {
	if source == nil {
		panic("card source cannot be nil") // ALLOW-PANIC
	}
	if cards == nil {
		panic("card state store cannot be nil") // ALLOW-PANIC
	}
	if settings == nil {
		panic("settings store cannot be nil") // ALLOW-PANIC
	}
	if model == nil {
		panic("memory model cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		panic("logger cannot be nil") // ALLOW-PANIC
	}
	return &serviceImpl{
		source:   source,
		cards:    cards,
		settings: settings,
		model:    model,
		logger:   logger.With(slog.String("component", "review_service")),
	}
}

func (s *serviceImpl) DueCards(ctx context.Context, now time.Time, limit int) ([]domain.Flashcard, error) {
	if limit <= 0 {
		limit = DefaultDueLimit
	}

	universe, err := s.source.EnumerateVocabularyCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerating cards: %w", err)
	}

	states, err := s.cards.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading card states: %w", err)
	}

	due := selectDue(universe, states, now, limit)

	s.logger.DebugContext(ctx, "selected due cards",
		slog.Int("universe", len(universe)),
		slog.Int("due", len(due)),
		slog.Int("limit", limit))

	return due, nil
}

func (s *serviceImpl) SubmitReview(ctx context.Context, cardID string, rating domain.Rating, now time.Time) (*ReviewResult, error) {
	if !rating.IsValid() {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}

	now = now.UTC()

	prior, err := s.loadState(ctx, cardID)
	if err != nil {
		return nil, err
	}

	retention, err := s.settings.DesiredRetention(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading desired retention: %w", err)
	}

	var prev *srs.MemoryState
	if prior != nil {
		prev = &srs.MemoryState{Stability: prior.Stability, Difficulty: prior.Difficulty}
	}

	states, err := s.model.NextStates(prev, retention, prior.ElapsedDays(now))
	if err != nil {
		if errors.Is(err, srs.ErrInvalidRetention) {
			// The stored setting is out of range. This is a fault in the
			// persisted configuration, not in the caller's request.
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		return nil, fmt.Errorf("computing next states: %w", err)
	}

	item := states.ForRating(rating)
	dueDate := now.AddDate(0, 0, item.IntervalDays)

	next := domain.CardState{
		Stability:    item.Stability,
		Difficulty:   item.Difficulty,
		LastReview:   &now,
		DueDate:      &dueDate,
		IntervalDays: item.IntervalDays,
	}

	if err := s.cards.Upsert(ctx, cardID, next); err != nil {
		return nil, fmt.Errorf("saving card state: %w", err)
	}

	s.logger.InfoContext(ctx, "review recorded",
		slog.String("card_id", cardID),
		slog.Int("rating", int(rating)),
		slog.Int("interval_days", item.IntervalDays))

	return &ReviewResult{DueDate: dueDate, IntervalDays: item.IntervalDays}, nil
}

// loadState fetches the prior scheduling state for a card. Absent and corrupt
// records both come back as nil: a corrupt row is unusable, and treating it
// as a first review lets the card recover on the next write.
func (s *serviceImpl) loadState(ctx context.Context, cardID string) (*domain.CardState, error) {
	state, err := s.cards.Get(ctx, cardID)
	switch {
	case err == nil:
		return state, nil
	case errors.Is(err, store.ErrCardStateNotFound):
		return nil, nil
	case errors.Is(err, store.ErrCorruptRecord):
		s.logger.WarnContext(ctx, "discarding corrupt card state",
			slog.String("card_id", cardID),
			slog.String("error", err.Error()))
		return nil, nil
	default:
		return nil, fmt.Errorf("loading card state: %w", err)
	}
}

func (s *serviceImpl) Settings(ctx context.Context) (Settings, error) {
	retention, err := s.settings.DesiredRetention(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("loading desired retention: %w", err)
	}
	return Settings{DesiredRetention: retention}, nil
}

func (s *serviceImpl) UpdateSettings(ctx context.Context, desiredRetention float64) error {
	if desiredRetention < srs.MinRetention || desiredRetention > srs.MaxRetention {
		return fmt.Errorf("%w: got %g", ErrInvalidRetention, desiredRetention)
	}
	if err := s.settings.SetDesiredRetention(ctx, desiredRetention); err != nil {
		return fmt.Errorf("saving desired retention: %w", err)
	}
	return nil
}

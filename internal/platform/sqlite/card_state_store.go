package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudrumbles/avvai/internal/domain"
	"github.com/cloudrumbles/avvai/internal/store"
)

// CardStateStore implements store.CardStateStore on the shared SQLite
// connection.
type CardStateStore struct {
	db     *DB
	logger *slog.Logger
}

// NewCardStateStore creates a SQLite-backed card state store.
// If logger is nil, a default logger will be used.
func NewCardStateStore(db *DB, logger *slog.Logger) *CardStateStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CardStateStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_state_store")),
	}
}

// Ensure CardStateStore implements store.CardStateStore.
var _ store.CardStateStore = (*CardStateStore)(nil)

// cardStateRow is the raw persisted shape before timestamp parsing.
type cardStateRow struct {
	stability    float64
	difficulty   float64
	lastReview   sql.NullString
	dueDate      sql.NullString
	intervalDays int
}

// Get implements store.CardStateStore.Get.
func (s *CardStateStore) Get(ctx context.Context, cardID string) (*domain.CardState, error) {
	var row cardStateRow
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT stability, difficulty, last_review, due_date, interval_days
		 FROM fsrs_cards WHERE card_id = ?`, cardID,
	).Scan(&row.stability, &row.difficulty, &row.lastReview, &row.dueDate, &row.intervalDays)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrCardStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read card state: %v", store.ErrStorageUnavailable, err)
	}

	state, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: card %s: %v", store.ErrCorruptRecord, cardID, err)
	}
	return state, nil
}

// GetAll implements store.CardStateStore.GetAll. Corrupt rows are logged
// and skipped so one bad record cannot block due-set selection.
func (s *CardStateStore) GetAll(ctx context.Context) (map[string]domain.CardState, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT card_id, stability, difficulty, last_review, due_date, interval_days
		 FROM fsrs_cards`)
	if err != nil {
		return nil, fmt.Errorf("%w: scan card states: %v", store.ErrStorageUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	states := make(map[string]domain.CardState)
	for rows.Next() {
		var cardID string
		var row cardStateRow
		if err := rows.Scan(&cardID, &row.stability, &row.difficulty,
			&row.lastReview, &row.dueDate, &row.intervalDays); err != nil {
			return nil, fmt.Errorf("%w: scan card state row: %v", store.ErrStorageUnavailable, err)
		}

		state, err := row.toDomain()
		if err != nil {
			s.logger.Warn("skipping corrupt card state row",
				slog.String("card_id", cardID),
				slog.String("error", err.Error()))
			continue
		}
		states[cardID] = *state
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate card states: %v", store.ErrStorageUnavailable, err)
	}
	return states, nil
}

// Upsert implements store.CardStateStore.Upsert. The write is a single
// atomic statement with replace-if-exists semantics keyed by card ID.
func (s *CardStateStore) Upsert(ctx context.Context, cardID string, state domain.CardState) error {
	_, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO fsrs_cards (card_id, stability, difficulty, last_review, due_date, interval_days)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(card_id) DO UPDATE SET
		    stability     = excluded.stability,
		    difficulty    = excluded.difficulty,
		    last_review   = excluded.last_review,
		    due_date      = excluded.due_date,
		    interval_days = excluded.interval_days`,
		cardID, state.Stability, state.Difficulty,
		formatTimestamp(state.LastReview), formatTimestamp(state.DueDate),
		state.IntervalDays,
	)
	if err != nil {
		return fmt.Errorf("%w: save card state: %v", store.ErrStorageUnavailable, err)
	}
	return nil
}

// toDomain parses the raw row into a domain.CardState.
func (r *cardStateRow) toDomain() (*domain.CardState, error) {
	lastReview, err := parseTimestamp(r.lastReview)
	if err != nil {
		return nil, fmt.Errorf("last_review: %v", err)
	}
	dueDate, err := parseTimestamp(r.dueDate)
	if err != nil {
		return nil, fmt.Errorf("due_date: %v", err)
	}
	return &domain.CardState{
		Stability:    r.stability,
		Difficulty:   r.difficulty,
		LastReview:   lastReview,
		DueDate:      dueDate,
		IntervalDays: r.intervalDays,
	}, nil
}

// formatTimestamp renders an optional instant as an RFC 3339 UTC string.
func formatTimestamp(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

// parseTimestamp is the inverse of formatTimestamp.
func parseTimestamp(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/cloudrumbles/avvai/internal/store"
)

// DefaultDesiredRetention is returned when no retention value has been
// stored yet.
const DefaultDesiredRetention = 0.9

// settingsKeyRetention is the row key for the desired retention value.
const settingsKeyRetention = "desired_retention"

// SettingsStore implements store.SettingsStore on the shared SQLite
// connection. Values are stored as strings in a generic key/value table.
type SettingsStore struct {
	db     *DB
	logger *slog.Logger
}

// NewSettingsStore creates a SQLite-backed settings store.
// If logger is nil, a default logger will be used.
func NewSettingsStore(db *DB, logger *slog.Logger) *SettingsStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

// Ensure SettingsStore implements store.SettingsStore.
var _ store.SettingsStore = (*SettingsStore)(nil)

// DesiredRetention implements store.SettingsStore.DesiredRetention.
func (s *SettingsStore) DesiredRetention(ctx context.Context) (float64, error) {
	var raw string
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT value FROM fsrs_settings WHERE key = ?`, settingsKeyRetention,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultDesiredRetention, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: read settings: %v", store.ErrStorageUnavailable, err)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: desired retention %q: %v", store.ErrCorruptRecord, raw, err)
	}
	return value, nil
}

// SetDesiredRetention implements store.SettingsStore.SetDesiredRetention.
func (s *SettingsStore) SetDesiredRetention(ctx context.Context, value float64) error {
	_, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO fsrs_settings (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		settingsKeyRetention, strconv.FormatFloat(value, 'f', -1, 64),
	)
	if err != nil {
		return fmt.Errorf("%w: save settings: %v", store.ErrStorageUnavailable, err)
	}
	return nil
}

package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudrumbles/avvai/internal/store"
)

// ProgressStore implements store.ProgressStore on the shared SQLite
// connection.
type ProgressStore struct {
	db     *DB
	logger *slog.Logger
}

// NewProgressStore creates a SQLite-backed lesson progress store.
// If logger is nil, a default logger will be used.
func NewProgressStore(db *DB, logger *slog.Logger) *ProgressStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure ProgressStore implements store.ProgressStore.
var _ store.ProgressStore = (*ProgressStore)(nil)

// GetAll implements store.ProgressStore.GetAll.
func (s *ProgressStore) GetAll(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT lesson_id, completed FROM lesson_progress`)
	if err != nil {
		return nil, fmt.Errorf("%w: scan lesson progress: %v", store.ErrStorageUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	progress := make(map[string]bool)
	for rows.Next() {
		var lessonID string
		var completed bool
		if err := rows.Scan(&lessonID, &completed); err != nil {
			return nil, fmt.Errorf("%w: scan progress row: %v", store.ErrStorageUnavailable, err)
		}
		progress[lessonID] = completed
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate lesson progress: %v", store.ErrStorageUnavailable, err)
	}
	return progress, nil
}

// Set implements store.ProgressStore.Set.
func (s *ProgressStore) Set(ctx context.Context, lessonID string, completed bool) error {
	_, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO lesson_progress (lesson_id, completed)
		VALUES (?, ?)
		ON CONFLICT(lesson_id) DO UPDATE SET completed = excluded.completed`,
		lessonID, completed,
	)
	if err != nil {
		return fmt.Errorf("%w: save lesson progress: %v", store.ErrStorageUnavailable, err)
	}
	return nil
}

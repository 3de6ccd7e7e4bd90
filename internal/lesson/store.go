// Package lesson provides the file-backed lesson content store. Lessons
// are JSON documents in a single directory, one file per lesson, named
// "<id>.json". The directory is the source of truth: nothing is cached
// between calls, so external edits to the files are picked up on the
// next request.
package lesson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cloudrumbles/avvai/internal/domain"
	"github.com/cloudrumbles/avvai/internal/store"
)

// Store reads and writes lesson files in a directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a lesson store rooted at dir. The directory is created
// if it does not exist. If logger is nil, a default logger will be used.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create lessons directory: %v", store.ErrStorageUnavailable, err)
	}
	return &Store{
		dir:    dir,
		logger: logger.With(slog.String("component", "lesson_store")),
	}, nil
}

// filename returns the lesson file path for an ID.
func (s *Store) filename(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// List returns summaries for every parseable lesson file, sorted by
// lesson ID. Unparseable files are skipped and logged: lesson serving is
// best-effort and one bad file must not hide the rest.
func (s *Store) List(ctx context.Context) ([]domain.LessonSummary, error) {
	lessons, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.LessonSummary, 0, len(lessons))
	for _, l := range lessons {
		summaries = append(summaries, l.Summary())
	}
	return summaries, nil
}

// ListFull returns every parseable lesson in full, sorted by lesson ID.
// Used by the admin API, which edits whole lessons rather than summaries.
func (s *Store) ListFull(ctx context.Context) ([]domain.Lesson, error) {
	return s.loadAll(ctx)
}

// Get returns the full lesson with the given ID.
// Returns store.ErrLessonNotFound if no such file exists.
func (s *Store) Get(ctx context.Context, id string) (*domain.Lesson, error) {
	data, err := os.ReadFile(s.filename(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read lesson file: %v", store.ErrStorageUnavailable, err)
	}

	var lesson domain.Lesson
	if err := json.Unmarshal(data, &lesson); err != nil {
		return nil, fmt.Errorf("%w: lesson %s: %v", store.ErrCorruptRecord, id, err)
	}
	return &lesson, nil
}

// Create writes a new lesson file.
// Returns store.ErrDuplicate if a lesson with the same ID already exists.
func (s *Store) Create(ctx context.Context, lesson *domain.Lesson) error {
	if err := lesson.Validate(); err != nil {
		return err
	}

	path := s.filename(lesson.ID)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: lesson %s", store.ErrDuplicate, lesson.ID)
	}
	return s.write(path, lesson)
}

// Update replaces an existing lesson file.
// Returns store.ErrLessonNotFound if the lesson does not exist.
func (s *Store) Update(ctx context.Context, id string, lesson *domain.Lesson) error {
	if err := lesson.Validate(); err != nil {
		return err
	}

	path := s.filename(id)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return store.ErrLessonNotFound
	} else if err != nil {
		return fmt.Errorf("%w: stat lesson file: %v", store.ErrStorageUnavailable, err)
	}
	return s.write(path, lesson)
}

// Delete removes a lesson file.
// Returns store.ErrLessonNotFound if the lesson does not exist.
func (s *Store) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.filename(id))
	if errors.Is(err, fs.ErrNotExist) {
		return store.ErrLessonNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: delete lesson file: %v", store.ErrStorageUnavailable, err)
	}
	return nil
}

// write marshals the lesson and writes it to path.
func (s *Store) write(path string, lesson *domain.Lesson) error {
	data, err := json.MarshalIndent(lesson, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize lesson: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write lesson file: %v", store.ErrStorageUnavailable, err)
	}
	return nil
}

// loadAll parses every lesson file in the directory in sorted filename
// order, skipping files that fail to parse.
func (s *Store) loadAll(ctx context.Context) ([]domain.Lesson, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read lessons directory: %v", store.ErrStorageUnavailable, err)
	}

	// os.ReadDir sorts by filename, which keeps enumeration order
	// deterministic for identical content.
	lessons := make([]domain.Lesson, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable lesson file",
				slog.String("file", entry.Name()),
				slog.String("error", err.Error()))
			continue
		}

		var lesson domain.Lesson
		if err := json.Unmarshal(data, &lesson); err != nil {
			s.logger.Warn("skipping unparseable lesson file",
				slog.String("file", entry.Name()),
				slog.String("error", err.Error()))
			continue
		}
		lessons = append(lessons, lesson)
	}

	sort.Slice(lessons, func(i, j int) bool { return lessons[i].ID < lessons[j].ID })
	return lessons, nil
}

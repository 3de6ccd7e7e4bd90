// Package media manages uploaded lesson media files on disk.
package media

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Common errors returned by the media package.
var (
	ErrFileNotFound  = errors.New("media file not found")
	ErrEmptyFilename = errors.New("filename cannot be empty")
)

// Store keeps uploaded media files in a single flat directory. Filenames are
// sanitised so a crafted name cannot escape the directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates the media directory if needed.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("media directory cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media directory: %w", err)
	}
	return &Store{
		dir:    dir,
		logger: logger.With(slog.String("component", "media_store")),
	}, nil
}

// List returns the names of all stored media files, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading media directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Save writes an uploaded file and returns the name it was stored under.
// When the sanitised name is already taken, a short unique suffix keeps the
// existing file intact.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	name := Sanitize(filename)
	if name == "" {
		return "", ErrEmptyFilename
	}

	if _, err := os.Stat(filepath.Join(s.dir, name)); err == nil {
		name = uniqueName(name)
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating media file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("closing media file", slog.String("error", cerr.Error()))
		}
	}()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("writing media file: %w", err)
	}

	s.logger.Info("media file stored", slog.String("filename", name))
	return name, nil
}

// Delete removes a stored media file by name.
func (s *Store) Delete(filename string) error {
	name := Sanitize(filename)
	if name == "" {
		return ErrEmptyFilename
	}

	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return fmt.Errorf("deleting media file: %w", err)
	}

	s.logger.Info("media file deleted", slog.String("filename", name))
	return nil
}

// Sanitize flattens path separators out of a filename so it stays inside the
// media directory.
func Sanitize(filename string) string {
	replaced := strings.NewReplacer("/", "_", "\\", "_").Replace(filename)
	cleaned := strings.Trim(strings.TrimSpace(replaced), ".")
	return cleaned
}

func uniqueName(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("%s-%s%s", base, suffix, ext)
}

package dictionary

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Cache is a write-through dictionary cache persisted as a single JSON file.
// The whole map is held in memory; the file is rewritten on every mutation.
// Safe for concurrent use.
type Cache struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]Entry
}

// NewCache loads the cache from path. A missing file yields an empty cache.
// An unreadable or unparseable file also yields an empty cache, with a
// warning, so a damaged cache never takes lookups down.
func NewCache(path string, logger *slog.Logger) *Cache {
	if path == "" {
		panic("cache path cannot be empty") // ALLOW-PANIC
	}
	if logger == nil {
		panic("logger cannot be nil") // ALLOW-PANIC
	}

	c := &Cache{
		path:    path,
		logger:  logger.With(slog.String("component", "dictionary_cache")),
		entries: make(map[string]Entry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("could not read dictionary cache, starting empty",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
		return c
	}

	if err := json.Unmarshal(data, &c.entries); err != nil {
		c.logger.Warn("dictionary cache is corrupt, starting empty",
			slog.String("path", path),
			slog.String("error", err.Error()))
		c.entries = make(map[string]Entry)
	}

	return c
}

// Get returns the cached entry for a word, if present. The word is normalised
// before lookup.
func (c *Cache) Get(word string) (Entry, bool) {
	key := Normalise(word)
	if key == "" {
		return Entry{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	return entry, ok
}

// Set stores an entry under the normalised word and persists the cache. An
// entry with a blank Word field is backfilled with the cache key.
func (c *Cache) Set(word string, entry Entry) error {
	key := Normalise(word)
	if key == "" {
		return ErrEmptyWord
	}
	if Normalise(entry.Word) == "" {
		entry.Word = key
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry
	return c.persistLocked()
}

// Remove deletes an entry by word, reporting whether anything was removed.
func (c *Cache) Remove(word string) (bool, error) {
	key := Normalise(word)
	if key == "" {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false, nil
	}

	delete(c.entries, key)
	if err := c.persistLocked(); err != nil {
		return true, err
	}
	return true, nil
}

// List returns all cached entries sorted by key.
func (c *Cache) List() []CacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CacheEntry, 0, len(c.entries))
	for key, entry := range c.entries {
		out = append(out, CacheEntry{Key: key, Entry: entry})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) persistLocked() error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating cache directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dictionary cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing dictionary cache: %w", err)
	}
	return nil
}

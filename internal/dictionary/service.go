package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

const lookupPromptFormat = "You are a Tamil-English dictionary. Given a Tamil word, " +
	"return a JSON object with fields: word (the original word), definition " +
	"(short English definition), and examples (array of 1-2 short Tamil example " +
	"sentences). Return ONLY valid JSON, nothing else.\n\nWord: %s"

const lemmatisePromptFormat = "You are a Tamil language expert. Lemmatize the following " +
	"Tamil word. A lemma is the base/dictionary form of a word. Return ONLY the " +
	"lemma as a single word, nothing else.\n\nWord: %s"

// Service answers word lookups, consulting the cache before the language
// model and writing every fresh result back through the cache.
type Service struct {
	cache     *Cache
	generator Generator
	logger    *slog.Logger
}

// NewService creates the dictionary service.
func NewService(cache *Cache, generator Generator, logger *slog.Logger) *Service {
	if cache == nil {
		panic("cache cannot be nil") // ALLOW-PANIC
	}
	if generator == nil {
		panic("generator cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		panic("logger cannot be nil") // ALLOW-PANIC
	}
	return &Service{
		cache:     cache,
		generator: generator,
		logger:    logger.With(slog.String("component", "dictionary_service")),
	}
}

// Lookup returns the dictionary entry for a Tamil word. Cached words never
// touch the model. Returns ErrEmptyWord when the word normalises to nothing.
func (s *Service) Lookup(ctx context.Context, word string) (*Entry, error) {
	key := Normalise(word)
	if key == "" {
		return nil, ErrEmptyWord
	}

	if entry, ok := s.cache.Get(key); ok {
		s.logger.DebugContext(ctx, "dictionary cache hit", slog.String("word", key))
		return &entry, nil
	}

	raw, err := s.generator.Generate(ctx, fmt.Sprintf(lookupPromptFormat, key))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if Normalise(entry.Word) == "" {
		entry.Word = key
	}

	if err := s.cache.Set(key, entry); err != nil {
		// The lookup itself succeeded. Losing the cache write only costs a
		// repeat model call later.
		s.logger.WarnContext(ctx, "could not persist dictionary entry",
			slog.String("word", key),
			slog.String("error", err.Error()))
	}

	s.logger.InfoContext(ctx, "dictionary entry generated", slog.String("word", key))
	return &entry, nil
}

// Lemmatise returns the base form of a Tamil word as reported by the model.
func (s *Service) Lemmatise(ctx context.Context, word string) (string, error) {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return "", ErrEmptyWord
	}

	raw, err := s.generator.Generate(ctx, fmt.Sprintf(lemmatisePromptFormat, trimmed))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	lemma := strings.TrimSpace(raw)
	if lemma == "" {
		return "", fmt.Errorf("%w: empty lemma", ErrInvalidResponse)
	}
	return lemma, nil
}

// cleanModelJSON strips markdown code fences and any prose surrounding the
// first JSON object in a model reply.
func cleanModelJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end >= start {
		return strings.TrimSpace(trimmed[start : end+1])
	}
	return trimmed
}

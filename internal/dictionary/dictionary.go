// Package dictionary provides Tamil-English word lookups backed by a language
// model, with a persistent on-disk cache so each word is only ever generated
// once.
package dictionary

import (
	"context"
	"errors"
	"strings"
)

// Common errors returned by the dictionary package.
var (
	// ErrEmptyWord is returned when a lookup word normalises to nothing.
	ErrEmptyWord = errors.New("word cannot be empty")

	// ErrLookupFailed is returned when the language model call fails.
	ErrLookupFailed = errors.New("dictionary lookup failed")

	// ErrInvalidResponse is returned when the model output cannot be parsed.
	ErrInvalidResponse = errors.New("invalid response from language model")
)

// Entry is a single dictionary entry for a Tamil word.
type Entry struct {
	Word       string   `json:"word"`
	Definition string   `json:"definition"`
	Examples   []string `json:"examples"`
}

// CacheEntry pairs a cache key with its entry, for administrative listings.
type CacheEntry struct {
	Key   string `json:"key"`
	Entry Entry  `json:"entry"`
}

// Generator is the boundary to the language model. Implementations send a
// prompt and return the raw text of the model's reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Normalise canonicalises a word for cache keying: surrounding whitespace is
// stripped and the word is lowercased. Tamil script has no case, so lowering
// only affects embedded Latin text.
func Normalise(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

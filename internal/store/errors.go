package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested record does not exist in the
	// store. For card states this is not an application error: an absent
	// state means "never reviewed".
	ErrNotFound = errors.New("record not found")

	// ErrStorageUnavailable is returned when the underlying medium cannot
	// be opened, read, or written. Surfaced to clients as a server error.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrCorruptRecord is returned when a stored row cannot be parsed into
	// its domain representation. Callers should treat the record as absent
	// and log the incident.
	ErrCorruptRecord = errors.New("corrupt record")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique record (e.g. a lesson file that already exists).
	ErrDuplicate = errors.New("record already exists")

	// Entity-specific "not found" errors

	// ErrLessonNotFound indicates that the requested lesson does not exist.
	ErrLessonNotFound = fmt.Errorf("%w: lesson", ErrNotFound)

	// ErrCardStateNotFound indicates that no scheduling state is stored for
	// the requested card.
	ErrCardStateNotFound = fmt.Errorf("%w: card state", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

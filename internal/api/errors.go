package api

import (
	"errors"
	"net/http"

	"github.com/cloudrumbles/avvai/internal/dictionary"
	"github.com/cloudrumbles/avvai/internal/domain"
	"github.com/cloudrumbles/avvai/internal/media"
	"github.com/cloudrumbles/avvai/internal/service/auth"
	"github.com/cloudrumbles/avvai/internal/service/review"
	"github.com/cloudrumbles/avvai/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, auth.ErrEmailNotAllowed):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, media.ErrFileNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, review.ErrInvalidRetention),
		errors.Is(err, dictionary.ErrEmptyWord),
		errors.Is(err, media.ErrEmptyFilename),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Server-side faults: bad persisted configuration, broken storage,
	// upstream model failures
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrEmailNotAllowed):
		return "Not authorised for admin access"

	case errors.Is(err, store.ErrLessonNotFound):
		return "Lesson not found"

	case errors.Is(err, store.ErrCardStateNotFound):
		return "Card not found"

	case errors.Is(err, media.ErrFileNotFound):
		return "File not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Lesson already exists"

	case errors.Is(err, review.ErrInvalidRating):
		return "Rating must be between 1 and 4"

	case errors.Is(err, review.ErrInvalidRetention):
		return "Desired retention must be between 0.7 and 0.99"

	case errors.Is(err, dictionary.ErrEmptyWord):
		return "Word cannot be empty"

	case errors.Is(err, media.ErrEmptyFilename):
		return "Filename cannot be empty"

	case errors.Is(err, domain.ErrValidation):
		return "Invalid request data"

	case errors.Is(err, review.ErrInvalidConfiguration):
		return "Scheduler configuration error"

	case errors.Is(err, dictionary.ErrLookupFailed),
		errors.Is(err, dictionary.ErrInvalidResponse):
		return "Dictionary lookup failed"

	case errors.Is(err, store.ErrStorageUnavailable),
		errors.Is(err, store.ErrCorruptRecord):
		return "Storage error"

	default:
		return "An unexpected error occurred"
	}
}

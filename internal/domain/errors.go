// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidSectionType is returned when a lesson section carries an
	// unknown "type" discriminator.
	ErrInvalidSectionType = errors.New("invalid section type")
)

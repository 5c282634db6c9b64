package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrNotFound indicates a required record was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a payload that cannot be persisted
	ErrInvalidInput = errors.New("invalid input")
)

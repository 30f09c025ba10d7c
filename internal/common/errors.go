package common

import "errors"

// Callers should use errors.Is to match these values.
var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Configuration errors.
	ErrUnknownRole        = errors.New("unknown role")
	ErrUnknownStoreDriver = errors.New("unknown store driver")

	// Interaction errors.
	ErrorCancelled = errors.New("cancelled by user")
)

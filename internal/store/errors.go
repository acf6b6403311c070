package store

import "errors"

var (
	// ErrNotFound reports that no character has the requested id.
	ErrNotFound = errors.New("character not found")

	// ErrConflict reports an id collision on insert.
	ErrConflict = errors.New("character id already exists")

	// ErrValidation reports a rejected payload. Wrapped errors carry the
	// field-specific message.
	ErrValidation = errors.New("invalid character payload")

	// ErrPersistence reports a failed write of the backing file. The
	// in-memory collection is left at its prior state.
	ErrPersistence = errors.New("failed to persist characters")
)

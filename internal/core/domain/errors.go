package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNoFileStaged indicates extraction was confirmed with no PDF staged.
	ErrNoFileStaged = errors.New("no file staged")

	// ErrExtractInProgress indicates an extraction is already running.
	// Duplicate submissions are suppressed while one is in flight.
	ErrExtractInProgress = errors.New("extraction in progress")

	// ErrIndexOutOfRange indicates a row index outside the draft.
	ErrIndexOutOfRange = errors.New("row index out of range")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

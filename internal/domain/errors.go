package domain

import "errors"

// Error taxonomy surfaced by the system. Callers classify failures with
// errors.Is; the wrapped message carries the human-readable reason.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrConflict          = errors.New("conflicts with an existing record")
	ErrInvalidState      = errors.New("invalid rental state transition")
	ErrValidation        = errors.New("validation failed")
)

package services

import "errors"

// Sentinel errors for conditions the controllers translate into
// user-visible messages. Everything else surfaces as a wrapped
// internal error.
var (
	// Range resolution
	ErrInvalidFormat = errors.New("invalid date format")
	ErrInvertedRange = errors.New("start date cannot be after end date")
	ErrFutureRange   = errors.New("selected range is in the future, no data available yet")

	// Entry validation
	ErrInvalidTimeOrder = errors.New("start time must be earlier than finish time")

	// Access control
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPasswordMismatch   = errors.New("incorrect admin password")
	ErrCredentialMismatch = errors.New("invalid username or password")

	// Lookups and duplicates
	ErrNotFound         = errors.New("not found")
	ErrDuplicateRequest = errors.New("an access request with this email has already been submitted")
)

package services

import "errors"

// Error kinds callers branch on with errors.Is. Everything else a service
// returns is an internal failure.
var (
	// ErrValidation marks input rejected before any state changed.
	ErrValidation = errors.New("validation failed")
	// ErrCapacityExceeded marks a diet photo append past the category limit.
	ErrCapacityExceeded = errors.New("photo limit reached")
	// ErrRecognitionFailed marks a malformed, unusable or error response
	// from the recognition service. The ledger is never touched by one.
	ErrRecognitionFailed = errors.New("recognition failed")
)

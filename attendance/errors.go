package attendance

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrRecordNotFound is returned when a record id is unknown to the store.
	ErrRecordNotFound = errors.New("attendance record not found")

	// ErrAlreadyVerified is returned in strict mode when confirming or
	// rejecting a record that already left PENDING.
	ErrAlreadyVerified = errors.New("attendance record already verified")

	// ErrMissingVerifier is returned when a confirm/reject carries no verifier id.
	ErrMissingVerifier = errors.New("verifier id is required")
)

package roster

import "errors"

var (
	// ErrNegativeAmount is returned when adding a discount with a negative amount.
	ErrNegativeAmount = errors.New("discount amount must not be negative")

	// ErrMissingName is returned when creating or updating a person without a name.
	ErrMissingName = errors.New("person name is required")
)

package store

import "errors"

// ErrNotFound - the id doesn't match any document or product.
var ErrNotFound = errors.New("not found")

// ValidationError - the input is missing a required field. Raised before any
// state is touched, so a rejected request has zero partial effects.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

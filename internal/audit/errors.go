package audit

import "errors"

var (
	// ErrInvalidInput signals a malformed audit entry.
	ErrInvalidInput = errors.New("invalid input")
)

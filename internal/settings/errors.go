package settings

import "errors"

var (
	// ErrNotFound signals that no setting matches the given category and key.
	ErrNotFound = errors.New("setting not found")
	// ErrInvalidInput signals a malformed setting.
	ErrInvalidInput = errors.New("invalid input")
)

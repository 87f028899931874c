package notifications

import "errors"

var (
	// ErrNotFound signals that no notification matches the given id and user.
	ErrNotFound = errors.New("notification not found")
	// ErrInvalidInput signals a malformed notification.
	ErrInvalidInput = errors.New("invalid input")
)

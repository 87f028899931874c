package attachments

import "errors"

var (
	// ErrNotFound signals that no attachment matches the given id.
	ErrNotFound = errors.New("attachment not found")
	// ErrInvalidInput signals a malformed upload.
	ErrInvalidInput = errors.New("invalid input")
)

package applications

import "errors"

var (
	ErrNotFound     = errors.New("application not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrBadStatus    = errors.New("unknown application status")
)

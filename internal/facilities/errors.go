package facilities

import "errors"

var (
	ErrNotFound     = errors.New("facility not found")
	ErrUserNotFound = errors.New("facility user not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("duplicate facility code or phone number")
)

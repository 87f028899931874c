package admins

import "errors"

var (
	ErrNotFound     = errors.New("admin not found")
	ErrRoleNotFound = errors.New("role not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("username already taken")
)

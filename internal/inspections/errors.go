package inspections

import "errors"

var (
	// ErrNotFound signals that a referenced inspection, application or
	// inspector does not exist.
	ErrNotFound = errors.New("not found")
	// ErrTemplateNotFound signals that no template matches a facility type.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrInvalidState signals an application whose status does not allow
	// inspection scheduling.
	ErrInvalidState = errors.New("application not ready for inspection scheduling")
	// ErrInvalidInput signals a malformed request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicate signals a second template for the same facility type.
	ErrDuplicate = errors.New("template already exists for facility type")
)

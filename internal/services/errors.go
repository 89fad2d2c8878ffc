package services

import "errors"

// Failure taxonomy shared by all services. Handlers translate these into
// HTTP statuses; wrap with fmt.Errorf("%w: detail") to add context.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("conflicting concurrent update")
	ErrDuplicate         = errors.New("duplicate value for unique field")
)

package errors

import "errors"

var (
	ErrSelectionNotFound = errors.New("selection not found")
	ErrInvalidSelection  = errors.New("invalid selection")
	ErrInvalidEmail      = errors.New("invalid email")
)

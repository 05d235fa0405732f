package errors

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidEmail    = errors.New("email is required")
)

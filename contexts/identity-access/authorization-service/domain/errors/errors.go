package errors

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidUserID   = errors.New("invalid user id")
	ErrInvalidRole     = errors.New("invalid role")
	ErrUserNotFound    = errors.New("user not found")
)

package errors

import "errors"

var (
	ErrClassNotFound       = errors.New("class not found")
	ErrInvalidClassID      = errors.New("invalid class id")
	ErrInvalidClass        = errors.New("invalid class")
	ErrInvalidClassStatus  = errors.New("invalid class status")
	ErrInvalidClassUpdate  = errors.New("invalid class update")
	ErrInvalidListQuery    = errors.New("invalid list query")
	ErrInvalidInstructorID = errors.New("invalid instructor identity")
)

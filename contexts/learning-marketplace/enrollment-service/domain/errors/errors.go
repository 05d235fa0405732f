package errors

import "errors"

var (
	ErrPaymentProvider = errors.New("payment provider error")
	ErrInvalidAmount   = errors.New("invalid payment amount")
	ErrInvalidPayment  = errors.New("invalid payment")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidTask     = errors.New("invalid enrollment task")
)

package common

import "errors"

// Business logic errors
var (
	// General errors. ErrNotFound deliberately covers both "row missing" and
	// "row exists but is not visible to the requester" so responses never leak
	// the existence of other users' private messages.
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Product errors
	ErrProductNotFound = errors.New("product not found")
	ErrNotSeller       = errors.New("seller account required")

	// Message errors
	ErrMessageNotFound = errors.New("message not found")
	ErrSelfMessage     = errors.New("cannot message yourself")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrEmailAlreadyUsed   = errors.New("email already in use")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)

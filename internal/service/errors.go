package service

import "errors"

var (
	// ErrValidation flags a malformed or missing required field.
	// Wrapped with a field-specific message at the point of failure.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so the two cases cannot be told apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

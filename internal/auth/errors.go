package auth

import "errors"

var (
	// ErrInvalidToken covers every token verification failure: bad
	// signature, expired, malformed, missing subject. Callers cannot
	// tell these apart.
	ErrInvalidToken = errors.New("invalid token")

	// ErrAuthentication is returned when a bearer token cannot be
	// resolved to a live user.
	ErrAuthentication = errors.New("could not validate credentials")

	// ErrForbidden is returned when an authenticated user is not the
	// owner of the resource being mutated.
	ErrForbidden = errors.New("not authorized to perform requested action")
)

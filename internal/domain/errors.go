package domain

import "errors"

var (
	// ErrNotFound indicates the requested remote resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMissingToken indicates an operation that needs an access token was
	// attempted before any token was obtained.
	ErrMissingToken = errors.New("missing access token")
	// ErrNotAuthenticated indicates an operation that needs a logged-in
	// customer was attempted from an anonymous session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

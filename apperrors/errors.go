// Package apperrors defines the sentinel errors shared by usecases and
// handlers. Handlers map them to HTTP statuses with errors.Is; anything
// unrecognized becomes a generic 500 whose detail goes to the logger only.
package apperrors

import "errors"

var (
	// ErrNotFound: the addressed resource id does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict: a create collided with an existing id.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidCredentials: login with unknown username or wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthorized: missing, invalid or expired token.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden: valid identity, insufficient privilege.
	ErrForbidden = errors.New("insufficient privilege")
)

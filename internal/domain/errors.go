package domain

import "errors"

// Sentinel errors shared across services and repositories. Unknown
// usernames and password mismatches both surface as
// ErrInvalidCredentials so callers cannot enumerate usernames.
var (
	ErrNotFound           = errors.New("requested resource not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingToken       = errors.New("missing authentication token")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("insufficient role for this operation")
	ErrDuplicateUser      = errors.New("username already taken")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

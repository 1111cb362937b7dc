package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for session transitions. Authenticators should wrap these
// so views can react to error categories without knowing the backend.
//
//	return Identity{}, fmt.Errorf("invalid credentials: %w", domain.ErrAuth)
var (
	// ErrAuth indicates the authentication exchange rejected the request.
	ErrAuth = errors.New("authentication failed")

	// ErrAuthUnavailable indicates the authentication service could not be
	// reached. It is considered transient and retried.
	ErrAuthUnavailable = errors.New("authentication service unavailable")

	// ErrSuperseded indicates a pending login or register was overtaken by a
	// newer session transition; its result was discarded.
	ErrSuperseded = errors.New("superseded by a newer session transition")
)

// AuthError is returned by login, register and password reset when the
// exchange fails. Session state is left unchanged.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// IsAuthError reports whether err is an AuthError (at any depth).
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

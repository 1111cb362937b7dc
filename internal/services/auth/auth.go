// Package auth implements the session store: the signed-in user and the
// login, register and logout transitions, backed by an Authenticator.
package auth

import "context"

// Identity is what the authentication service returns for an account.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

// Authenticator is the port to the remote authentication service.
// Implementations should wrap domain.ErrAuth for rejected credentials and
// domain.ErrAuthUnavailable for transient failures.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (Identity, error)
	CreateAccount(ctx context.Context, name, email, password string) (Identity, error)
	RequestReset(ctx context.Context, email string) error
}

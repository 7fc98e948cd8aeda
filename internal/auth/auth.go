// Package auth is the pluggable authentication boundary between the
// HTTP surface and the vault. Handlers only ever see opaque tokens and
// (username, secret) pairs; which mechanism actually checks the secret
// is an adapter decision.
package auth

import (
	"errors"

	"lockvault/internal/app/server/guard"
	"lockvault/internal/domain/user"
)

var (
	// ErrFailedPAM reports a failure inside an external PAM mechanism.
	ErrFailedPAM = errors.New("pam authentication failed")
	// ErrUserNotAuthorised is the generic rejection. It deliberately
	// carries no detail about which check failed.
	ErrUserNotAuthorised = errors.New("user not authorised")
)

// Authenticator validates a secret for a user and manages the session
// token it issues.
type Authenticator interface {
	Authenticate(username, secret string) (user.Token, error)
	Deauthenticate(username string, token user.Token) error
}

// Registry authenticates against the vault's own user registry. It is
// the default mechanism; PAM or other system mechanisms can replace it
// behind the same interface.
type Registry struct {
	guard *guard.Guard
}

func NewRegistry(g *guard.Guard) *Registry {
	return &Registry{guard: g}
}

func (r *Registry) Authenticate(username, secret string) (user.Token, error) {
	v := r.guard.Acquire()
	defer r.guard.Release()

	token, err := v.Authenticate(username, secret)
	if err != nil {
		return user.Token{}, ErrUserNotAuthorised
	}
	return token, nil
}

func (r *Registry) Deauthenticate(username string, token user.Token) error {
	v := r.guard.Acquire()
	defer r.guard.Release()

	if !v.Deauthenticate(username, token) {
		return ErrUserNotAuthorised
	}
	return nil
}

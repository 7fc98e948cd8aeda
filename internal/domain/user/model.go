package user

import (
	"crypto/subtle"

	"lockvault/internal/crypto"
)

// User is an identity with a built-in passphrase check.
//
// Access rights attached to a user are metadata for API layers: a layer
// is free to disregard them, so they are management control rather than a
// cryptographic guarantee. The password itself is never stored, only a
// salted one-way hash of it.
type User struct {
	Name   string          `json:"name"`
	PwHash string          `json:"pw_hash"`
	Rights map[Access]Role `json:"rights"`

	// token is session state, never persisted with the user.
	token *Token
}

// Register creates a new user. The user name acts as the per-user salt
// for the password hash.
func Register(name, password string) *User {
	return &User{
		Name:   name,
		PwHash: crypto.Base64Encode(crypto.SaltedHash(password, name)),
		Rights: make(map[Access]Role),
	}
}

// Verify recomputes the salted hash for a password input and compares it
// against the stored one in constant time. A mismatch is a normal false
// result, not an error.
func (u *User) Verify(password string) bool {
	computed := crypto.Base64Encode(crypto.SaltedHash(password, u.Name))
	return subtle.ConstantTimeCompare([]byte(computed), []byte(u.PwHash)) == 1
}

// Token returns the user's session token, allocating a random one on
// first use. Subsequent calls return the same token until the user
// object is replaced or ClearToken is called.
func (u *User) Token() (Token, error) {
	if u.token == nil {
		t, err := NewToken()
		if err != nil {
			return Token{}, err
		}
		u.token = &t
	}
	return *u.token, nil
}

// MatchToken reports whether a token matches the user's live session.
// A user without a session matches nothing; no token is allocated.
func (u *User) MatchToken(t Token) bool {
	return u.token != nil && u.token.Equal(t)
}

// ClearToken retires the current session token.
func (u *User) ClearToken() {
	u.token = nil
}

// GiveAccess grants a role on a resource, overwriting any previous grant
// for the same resource.
func (u *User) GiveAccess(item Access, role Role) {
	if u.Rights == nil {
		u.Rights = make(map[Access]Role)
	}
	u.Rights[item] = role
}

// HasAccess looks up the granted role for a resource. A false second
// return means no access of any kind.
func (u *User) HasAccess(item Access) (Role, bool) {
	role, ok := u.Rights[item]
	return role, ok
}

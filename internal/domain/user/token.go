package user

import (
	"crypto/subtle"
	"fmt"

	"lockvault/internal/crypto"
)

// TokenSize is the fixed length of a bearer session token.
const TokenSize = 32

// Token is an opaque random bearer credential identifying an
// authenticated session. It carries no structure and no expiry; only an
// explicit deauthentication retires it.
type Token [TokenSize]byte

// NewToken draws a fresh random token.
func NewToken() (Token, error) {
	var t Token
	b, err := crypto.RandomBytes(TokenSize)
	if err != nil {
		return t, err
	}
	copy(t[:], b)
	return t, nil
}

// ParseToken decodes the transport form produced by String.
func ParseToken(s string) (Token, error) {
	var t Token
	b, err := crypto.Base64Decode(s)
	if err != nil {
		return t, err
	}
	if len(b) != TokenSize {
		return t, fmt.Errorf("token is %d bytes, want %d", len(b), TokenSize)
	}
	copy(t[:], b)
	return t, nil
}

// Equal compares two tokens in constant time. Every byte of both arrays
// is examined regardless of where the first mismatch occurs, so timing
// reveals nothing about the position of a difference.
func (t Token) Equal(other Token) bool {
	return subtle.ConstantTimeCompare(t[:], other[:]) == 1
}

// String returns the base64 transport encoding of the token.
func (t Token) String() string {
	return crypto.Base64Encode(t[:])
}

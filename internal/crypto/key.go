package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the exact key length required by the AES-256-GCM engine.
	KeySize = 32

	pbkdf2Iterations = 100000
)

// Key is raw symmetric key material. It is either generated from
// randomness or derived deterministically from a password and salt.
type Key []byte

// GenerateKey creates fresh random key material.
func GenerateKey() (Key, error) {
	b, err := RandomBytes(KeySize)
	if err != nil {
		return nil, err
	}
	return Key(b), nil
}

// KeyFromPassword derives a key from a password via PBKDF2-SHA256.
// The derivation is deterministic for a given password and salt.
func KeyFromPassword(password, salt string) Key {
	return Key(pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, KeySize, sha256.New))
}

// SaltedHash is the one-way keyed hash used for password verification.
// The salt is appended to the data before hashing, so equal inputs with
// different salts produce unrelated digests.
func SaltedHash(data, salt string) []byte {
	sum := blake2b.Sum256([]byte(data + salt))
	return sum[:]
}

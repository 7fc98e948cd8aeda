package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"
	"fmt"
)

// IVSize is the length of the per-engine initialization value. The iv is
// drawn once when an engine is created and sealed into every envelope the
// engine produces as associated data, so an envelope cannot be opened
// with a tampered iv.
const IVSize = 16

// PackedData is the wire envelope for one encrypted payload. All three
// fields are byte sequences; the JSON encoding base64s them.
type PackedData struct {
	Nonce []byte `json:"nonce"`
	IV    []byte `json:"iv"`
	Data  []byte `json:"data"`
}

// Engine is an immutable encrypt/decrypt context holding a key and a
// per-instance iv. The iv is read-only after construction; it is never
// regenerated mid-life without rebuilding the whole engine.
//
// An Engine is not internally synchronized against concurrent
// reconstruction; see the vault layer for the sharing discipline.
type Engine struct {
	key  Key
	iv   []byte
	aead cipher.AEAD
}

// NewEngine builds an engine around existing key material with a fresh iv.
// Key material of the wrong length is rejected outright.
func NewEngine(key Key) (*Engine, error) {
	iv, err := RandomBytes(IVSize)
	if err != nil {
		return nil, err
	}
	return LoadEngine(key, iv)
}

// NewEngineFromPassword derives the key from a password and salt, then
// behaves like NewEngine.
func NewEngineFromPassword(password, salt string) (*Engine, error) {
	return NewEngine(KeyFromPassword(password, salt))
}

// LoadEngine rebuilds an engine from a persisted key and iv pairing.
func LoadEngine(key Key, iv []byte) (*Engine, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key is %d bytes, cipher requires %d", ErrFailedKey, len(key), KeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedKey, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedCrypto, err)
	}
	return &Engine{key: key, iv: iv, aead: aead}, nil
}

// Key exposes the raw key material for wrapping. Callers must not hold on
// to the slice beyond the engine's lifetime.
func (e *Engine) Key() Key { return e.key }

// IV returns the engine's initialization value.
func (e *Engine) IV() []byte { return e.iv }

// Encrypt serializes a value to canonical JSON, seals it under a fresh
// random nonce with the engine's iv bound as associated data, and returns
// the base64 wire encoding of the PackedData envelope.
//
// The nonce never repeats under the same key+iv; reuse would break both
// confidentiality and authenticity of the AEAD scheme.
func (e *Engine) Encrypt(value any) (string, error) {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedEncode, err)
	}
	nonce, err := RandomBytes(e.aead.NonceSize())
	if err != nil {
		return "", err
	}
	packed := PackedData{
		Nonce: nonce,
		IV:    e.iv,
		Data:  e.aead.Seal(nil, nonce, plaintext, e.iv),
	}
	envelope, err := json.Marshal(&packed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedEncode, err)
	}
	return Base64Encode(envelope), nil
}

// Decrypt parses a wire envelope and opens it into the given value. A
// malformed envelope fails with ErrFailedDecode; a well-formed envelope
// whose integrity tag does not verify fails with ErrAuthenticationFailure.
//
// The envelope's own iv is used as the associated data, not the engine's:
// any envelope sealed under the same key opens regardless of which engine
// instance produced it. Keyfold depends on this, since every
// password-derived engine draws a fresh iv.
func (e *Engine) Decrypt(wire string, into any) error {
	envelope, err := Base64Decode(wire)
	if err != nil {
		return err
	}
	var packed PackedData
	if err := json.Unmarshal(envelope, &packed); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedDecode, err)
	}
	if len(packed.Nonce) != e.aead.NonceSize() {
		return fmt.Errorf("%w: nonce is %d bytes, want %d", ErrFailedDecode, len(packed.Nonce), e.aead.NonceSize())
	}
	plaintext, err := e.aead.Open(nil, packed.Nonce, packed.Data, packed.IV)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthenticationFailure, err)
	}
	if err := json.Unmarshal(plaintext, into); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedDecode, err)
	}
	return nil
}

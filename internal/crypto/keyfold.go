package crypto

import "fmt"

// engineState is the persisted form of an engine: its key and iv. It only
// ever exists in wrapped (encrypted) form outside of process memory.
type engineState struct {
	Key Key    `json:"key"`
	IV  []byte `json:"iv"`
}

// Keyfold maps engines to their wrapped at-rest form.
//
// It is initialised with a user passphrase (the username acts as salt) and
// can then wrap a vault's primary engine for storage in a persistence
// medium, or unwrap one retrieved through a vault metadata API. The primary
// key never touches disk in cleartext.
type Keyfold struct {
	engine *Engine
}

// NewKeyfold derives the password engine used for wrapping.
func NewKeyfold(password, salt string) (*Keyfold, error) {
	engine, err := NewEngineFromPassword(password, salt)
	if err != nil {
		return nil, err
	}
	return &Keyfold{engine: engine}, nil
}

// Wrap encrypts the engine's key and iv under the password engine and
// returns the wire encoding for persistence.
func (f *Keyfold) Wrap(e *Engine) (string, error) {
	if e == nil {
		return "", ErrInvalidCryptoLayer
	}
	return f.engine.Encrypt(&engineState{Key: e.key, IV: e.iv})
}

// Unwrap decrypts a wrapped engine and reconstructs it. A wrong passphrase
// surfaces as ErrAuthenticationFailure from the envelope open.
func (f *Keyfold) Unwrap(wire string) (*Engine, error) {
	var state engineState
	if err := f.engine.Decrypt(wire, &state); err != nil {
		return nil, fmt.Errorf("unwrap key: %w", err)
	}
	return LoadEngine(state.Key, state.IV)
}

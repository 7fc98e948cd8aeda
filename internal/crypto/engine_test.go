package crypto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	key, err := GenerateKey()
	require.NoError(t, err)
	engine, err := NewEngine(key)
	require.NoError(t, err)
	return engine
}

func TestEngineRoundTrip(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name  string
		value any
	}{
		{"string", "some secret"},
		{"number", float64(42)},
		{"map", map[string]any{"user": "alice", "pin": "0000"}},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire, err := engine.Encrypt(tt.value)
			require.NoError(t, err)

			var got any
			require.NoError(t, engine.Decrypt(wire, &got))
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestEngineRejectsBadKeyLength(t *testing.T) {
	_, err := NewEngine(Key([]byte("short")))
	assert.ErrorIs(t, err, ErrFailedKey)

	_, err = LoadEngine(make(Key, 64), make([]byte, IVSize))
	assert.ErrorIs(t, err, ErrFailedKey)
}

func TestEngineTamperDetection(t *testing.T) {
	engine := newTestEngine(t)

	wire, err := engine.Encrypt("payload under test")
	require.NoError(t, err)

	envelope, err := Base64Decode(wire)
	require.NoError(t, err)
	var packed PackedData
	require.NoError(t, json.Unmarshal(envelope, &packed))

	// Flip one bit in every ciphertext byte position in turn; each
	// mutation must fail authentication, never decode into garbage.
	for i := range packed.Data {
		mutated := packed
		mutated.Data = append([]byte(nil), packed.Data...)
		mutated.Data[i] ^= 0x01

		raw, err := json.Marshal(&mutated)
		require.NoError(t, err)

		var got string
		err = engine.Decrypt(Base64Encode(raw), &got)
		assert.ErrorIs(t, err, ErrAuthenticationFailure)
	}
}

func TestEngineMalformedEnvelope(t *testing.T) {
	engine := newTestEngine(t)

	var got string
	assert.ErrorIs(t, engine.Decrypt("not base64 at all!!!", &got), ErrFailedDecode)
	assert.ErrorIs(t, engine.Decrypt(Base64Encode([]byte("{not json")), &got), ErrFailedDecode)
	assert.NotErrorIs(t, engine.Decrypt(Base64Encode([]byte("{not json")), &got), ErrAuthenticationFailure)
}

func TestEngineNonceUniqueness(t *testing.T) {
	engine := newTestEngine(t)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		wire, err := engine.Encrypt("identical plaintext")
		require.NoError(t, err)
		assert.False(t, seen[wire], "two encryptions produced identical ciphertext")
		seen[wire] = true
	}
}

func TestEngineIVStableAcrossCalls(t *testing.T) {
	engine := newTestEngine(t)

	iv := append([]byte(nil), engine.IV()...)
	for i := 0; i < 5; i++ {
		_, err := engine.Encrypt(i)
		require.NoError(t, err)
	}
	assert.Equal(t, iv, engine.IV())
}

func TestEngineDecryptWithWrongKey(t *testing.T) {
	engine := newTestEngine(t)
	other := newTestEngine(t)

	wire, err := engine.Encrypt("cross engine")
	require.NoError(t, err)

	var got string
	assert.ErrorIs(t, other.Decrypt(wire, &got), ErrAuthenticationFailure)
}

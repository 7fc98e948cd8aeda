package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenEqual(t *testing.T) {
	t1, err := NewToken()
	require.NoError(t, err)

	assert.True(t, t1.Equal(t1))

	// Differences at the first and the last byte take the same code
	// path: the comparison always walks the full fixed-length array.
	first := t1
	first[0] ^= 0xff
	assert.False(t, t1.Equal(first))

	last := t1
	last[TokenSize-1] ^= 0xff
	assert.False(t, t1.Equal(last))
}

func TestTokenRandomness(t *testing.T) {
	t1, err := NewToken()
	require.NoError(t, err)
	t2, err := NewToken()
	require.NoError(t, err)
	assert.False(t, t1.Equal(t2))
}

func TestTokenTransportEncoding(t *testing.T) {
	t1, err := NewToken()
	require.NoError(t, err)

	parsed, err := ParseToken(t1.String())
	require.NoError(t, err)
	assert.True(t, t1.Equal(parsed))

	_, err = ParseToken("@@@not base64@@@")
	assert.Error(t, err)
	_, err = ParseToken("c2hvcnQ=")
	assert.Error(t, err, "wrong-length tokens must be rejected")
}

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockvault/internal/infrastructure/backend"
)

func TestMemoryBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := New()
	require.NoError(t, b.Init(ctx))

	_, err := b.Read(ctx, backend.KindRecord, "mail")
	assert.ErrorIs(t, err, backend.ErrNotFound)

	require.NoError(t, b.Write(ctx, backend.KindRecord, "mail", []byte("blob")))
	got, err := b.Read(ctx, backend.KindRecord, "mail")
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), got)

	names, err := b.List(ctx, backend.KindRecord)
	require.NoError(t, err)
	assert.Equal(t, []string{"mail"}, names)

	// Kinds are separate namespaces.
	names, err = b.List(ctx, backend.KindMetadata)
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, b.Delete(ctx, backend.KindRecord, "mail"))
	_, err = b.Read(ctx, backend.KindRecord, "mail")
	assert.ErrorIs(t, err, backend.ErrNotFound)

	// Deleting an absent entry stays quiet.
	assert.NoError(t, b.Delete(ctx, backend.KindRecord, "mail"))
}

func TestMemoryBackendCopiesData(t *testing.T) {
	ctx := context.Background()
	b := New()
	require.NoError(t, b.Init(ctx))

	data := []byte("original")
	require.NoError(t, b.Write(ctx, backend.KindRecord, "entry", data))
	data[0] = 'X'

	got, err := b.Read(ctx, backend.KindRecord, "entry")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got, "stored bytes must not alias the caller's slice")
}

package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockvault/internal/infrastructure/backend"
)

func TestFileBackendScaffold(t *testing.T) {
	dir := t.TempDir()
	b := New(dir, "personal")

	assert.False(t, b.Exists())
	require.NoError(t, b.Init(context.Background()))
	assert.True(t, b.Exists())

	for _, sub := range []string{"records", "metadata", "checksums"} {
		info, err := os.Stat(filepath.Join(dir, "personal.vault", sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestFileBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := New(t.TempDir(), "personal")
	require.NoError(t, b.Init(ctx))

	_, err := b.Read(ctx, backend.KindRecord, "mail")
	assert.ErrorIs(t, err, backend.ErrNotFound)

	require.NoError(t, b.Write(ctx, backend.KindRecord, "mail", []byte("blob")))
	require.NoError(t, b.Write(ctx, backend.KindChecksum, "mail", []byte("sum")))

	got, err := b.Read(ctx, backend.KindRecord, "mail")
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), got)

	names, err := b.List(ctx, backend.KindRecord)
	require.NoError(t, err)
	assert.Equal(t, []string{"mail"}, names)

	require.NoError(t, b.Delete(ctx, backend.KindRecord, "mail"))
	_, err = b.Read(ctx, backend.KindRecord, "mail")
	assert.ErrorIs(t, err, backend.ErrNotFound)
	assert.NoError(t, b.Delete(ctx, backend.KindRecord, "mail"))
}

func TestFileBackendConfigAtRoot(t *testing.T) {
	ctx := context.Background()
	b := New(t.TempDir(), "personal")
	require.NoError(t, b.Init(ctx))

	require.NoError(t, b.Write(ctx, backend.KindConfig, "vault", []byte("version = \"0.1.0\"\n")))

	// The config document sits at the vault root, not in a subdirectory.
	_, err := os.Stat(filepath.Join(b.Root(), "vault.toml"))
	require.NoError(t, err)

	names, err := b.List(ctx, backend.KindConfig)
	require.NoError(t, err)
	assert.Equal(t, []string{"vault"}, names)
}

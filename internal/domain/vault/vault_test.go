package vault

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockvault/internal/crypto"
	"lockvault/internal/domain/record"
	"lockvault/internal/infrastructure/backend"
	"lockvault/internal/infrastructure/backend/file"
	"lockvault/internal/infrastructure/backend/memory"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	store := memory.New()
	gen := NewGenerator().Path("v1", "mem").SoloUser("alice", "pw")
	v, err := Create(context.Background(), gen, store)
	require.NoError(t, err)
	return v
}

func TestCreateReopenRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	v, err := Create(ctx,
		NewGenerator().Path("v1", dir).SoloUser("alice", "pw"),
		file.New(dir, "v1"))
	require.NoError(t, err)

	require.NoError(t, v.AddRecord("r1", "cat", []string{"t"}))
	assert.True(t, v.AddData("r1", "k", record.TextPayload("secret")))
	require.NoError(t, v.Sync(ctx))
	require.NoError(t, v.Close(ctx))

	reopened, err := Open(ctx, "v1", dir, file.New(dir, "v1"))
	require.NoError(t, err)

	// Before authentication the body stays sealed.
	_, ok := reopened.GetData("r1", "k")
	assert.False(t, ok)

	_, err = reopened.Authenticate("alice", "pw")
	require.NoError(t, err)

	got, ok := reopened.GetData("r1", "k")
	require.True(t, ok)
	assert.True(t, record.TextPayload("secret").Equal(got))
}

func TestAddDataOnSealedRecord(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	v, err := Create(ctx, NewGenerator().Path("v1", "mem").SoloUser("alice", "pw"), store)
	require.NoError(t, err)
	require.NoError(t, v.AddRecord("r1", "cat", nil))
	require.True(t, v.AddData("r1", "k", record.TextPayload("original")))
	require.NoError(t, v.Sync(ctx))

	reopened, err := Open(ctx, "v1", "mem", store)
	require.NoError(t, err)

	// Before authentication the body is sealed: the write must be
	// refused, not silently dropped.
	updated := reopened.records["r1"].Header.DateUpdated
	assert.False(t, reopened.AddData("r1", "k", record.TextPayload("overwritten")))
	assert.Equal(t, updated, reopened.records["r1"].Header.DateUpdated)

	_, err = reopened.Authenticate("alice", "pw")
	require.NoError(t, err)

	got, ok := reopened.GetData("r1", "k")
	require.True(t, ok)
	assert.True(t, record.TextPayload("original").Equal(got))
}

func TestSessionSurvivesFetch(t *testing.T) {
	ctx := context.Background()
	v := newTestVault(t)

	token, err := v.Authenticate("alice", "pw")
	require.NoError(t, err)

	require.NoError(t, v.Fetch(ctx))

	name, ok := v.ValidSession(token)
	require.True(t, ok, "a cache reload must not retire live sessions")
	assert.Equal(t, "alice", name)
}

func TestCreateRefusesExistingVault(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	_, err := Create(ctx, NewGenerator().Path("v1", "mem").SoloUser("alice", "pw"), store)
	require.NoError(t, err)

	_, err = Create(ctx, NewGenerator().Path("v1", "mem").SoloUser("alice", "pw"), store)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGeneratorValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		gen  *Generator
		want error
	}{
		{"empty", NewGenerator(), ErrIncompleteGenerator},
		{"no user", NewGenerator().Path("v1", "mem"), ErrIncompleteGenerator},
		{"no path", NewGenerator().SoloUser("alice", "pw"), ErrIncompleteGenerator},
		{"bad name", NewGenerator().Path("../v1", "mem").SoloUser("alice", "pw"), ErrInvalidName},
		{"bad path", NewGenerator().Path("v1", "mem\x00").SoloUser("alice", "pw"), ErrInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Create(ctx, tt.gen, memory.New())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthenticateWrongSecret(t *testing.T) {
	v := newTestVault(t)

	_, err := v.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, crypto.ErrAuthenticationFailure)

	// Unknown users fail with the same error value.
	_, err = v.Authenticate("mallory", "pw")
	assert.ErrorIs(t, err, crypto.ErrAuthenticationFailure)
}

func TestSessionLifecycle(t *testing.T) {
	v := newTestVault(t)

	token, err := v.Authenticate("alice", "pw")
	require.NoError(t, err)

	name, ok := v.ValidSession(token)
	require.True(t, ok)
	assert.Equal(t, "alice", name)

	// Repeated authentication reuses the cached session token.
	again, err := v.Authenticate("alice", "pw")
	require.NoError(t, err)
	assert.True(t, token.Equal(again))

	assert.False(t, v.Deauthenticate("mallory", token))
	assert.True(t, v.Deauthenticate("alice", token))

	_, ok = v.ValidSession(token)
	assert.False(t, ok)
}

func TestRecordOperations(t *testing.T) {
	ctx := context.Background()
	v := newTestVault(t)

	assert.False(t, v.Contains("r1"))
	_, ok := v.GetRecord("r1")
	assert.False(t, ok)

	require.NoError(t, v.AddRecord("r1", "cat", nil))
	assert.True(t, v.Contains("r1"))
	assert.ErrorIs(t, v.AddRecord("r1", "other", nil), ErrAlreadyExists)
	assert.ErrorIs(t, v.AddRecord("bad/name", "cat", nil), ErrInvalidName)

	assert.True(t, v.AddData("r1", "k", record.NumberPayload(7)))
	assert.False(t, v.AddData("ghost", "k", record.NumberPayload(7)))

	got, ok := v.GetData("r1", "k")
	require.True(t, ok)
	assert.True(t, record.NumberPayload(7).Equal(got))

	_, ok = v.GetData("r1", "missing")
	assert.False(t, ok)

	require.NoError(t, v.DeleteRecord(ctx, "r1"))
	assert.False(t, v.Contains("r1"))
	assert.NoError(t, v.DeleteRecord(ctx, "r1"), "deleting an absent record is a no-op")
}

func TestMetadataSnapshot(t *testing.T) {
	v := newTestVault(t)
	require.NoError(t, v.AddRecord("r1", "cat", nil))

	md := v.Metadata()
	assert.Equal(t, "v1", md.Name)
	assert.Equal(t, "mem", md.Location)
	assert.Equal(t, 1, md.Size)
}

func TestMetaDomainFamily(t *testing.T) {
	ctx := context.Background()
	v := newTestVault(t)

	assert.False(t, v.MetaExists("counters"))
	require.NoError(t, v.MetaAddDomain("counters"))
	assert.True(t, v.MetaExists("counters"))
	assert.ErrorIs(t, v.MetaAddDomain("counters"), ErrAlreadyExists)

	// The user registry domain is reserved.
	assert.ErrorIs(t, v.MetaAddDomain(userStoreDomain), ErrInvalidName)

	assert.True(t, v.MetaSet("counters", "hits", record.NumberPayload(1)))
	assert.False(t, v.MetaSet("ghost", "hits", record.NumberPayload(1)))

	got, ok := v.MetaGet("counters", "hits")
	require.True(t, ok)
	assert.True(t, record.NumberPayload(1).Equal(got))

	_, ok, err := v.MetaPullDomain(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok, "absent domains are a normal outcome")

	d, ok, err := v.MetaPullDomain(ctx, "counters")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, d.Size())
}

func TestMetaDomainsSurviveSync(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	v, err := Create(ctx,
		NewGenerator().Path("v1", dir).SoloUser("alice", "pw"),
		file.New(dir, "v1"))
	require.NoError(t, err)

	require.NoError(t, v.MetaAddDomain("counters"))
	v.MetaSet("counters", "hits", record.NumberPayload(42))
	require.NoError(t, v.Sync(ctx))

	reopened, err := Open(ctx, "v1", dir, file.New(dir, "v1"))
	require.NoError(t, err)

	got, ok := reopened.MetaGet("counters", "hits")
	require.True(t, ok)
	assert.True(t, record.NumberPayload(42).Equal(got))
}

func TestPullSingleRecord(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	v, err := Create(ctx, NewGenerator().Path("v1", "mem").SoloUser("alice", "pw"), store)
	require.NoError(t, err)
	require.NoError(t, v.AddRecord("r1", "cat", nil))
	require.NoError(t, v.Sync(ctx))

	// Drop the cache, then pull one record back on demand.
	v.records = make(map[string]*record.Record)
	r, ok, err := v.Pull(ctx, "r1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "r1", r.Header.Name)

	_, ok, err = v.Pull(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFetchRejectsTamperedRecord(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	v, err := Create(ctx, NewGenerator().Path("v1", "mem").SoloUser("alice", "pw"), store)
	require.NoError(t, err)
	require.NoError(t, v.AddRecord("r1", "cat", nil))
	require.NoError(t, v.Sync(ctx))

	raw, err := store.Read(ctx, backend.KindRecord, "r1")
	require.NoError(t, err)
	raw[len(raw)/2] ^= 0xff
	require.NoError(t, store.Write(ctx, backend.KindRecord, "r1", raw))

	assert.ErrorIs(t, v.Fetch(ctx), ErrFailedSelfTest)
}

func TestOpenRejectsIncompatibleVersion(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	_, err := Create(ctx, NewGenerator().Path("v1", "mem").SoloUser("alice", "pw"), store)
	require.NoError(t, err)

	future := newConfig(TypeSoloUser)
	future.Version = "9.0.0"
	raw, err := future.encode()
	require.NoError(t, err)
	require.NoError(t, store.Write(ctx, backend.KindConfig, configEntry, raw))

	_, err = Open(ctx, "v1", "mem", store)
	assert.ErrorIs(t, err, ErrIncompatibleVersion)
}

func TestAdministratedVault(t *testing.T) {
	v, err := Create(context.Background(),
		NewGenerator().Path("v1", "mem").Administrated("rootpw"),
		memory.New())
	require.NoError(t, err)

	_, err = v.Authenticate("admin", "rootpw")
	assert.NoError(t, err)
}

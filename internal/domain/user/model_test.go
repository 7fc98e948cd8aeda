package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndVerify(t *testing.T) {
	u := Register("alice", "pw1")

	assert.True(t, u.Verify("pw1"))
	assert.False(t, u.Verify("pw2"))
	assert.NotContains(t, u.PwHash, "pw1", "password must never be stored in cleartext")
}

func TestRegisterSaltedByName(t *testing.T) {
	a := Register("alice", "same password")
	b := Register("bob", "same password")
	assert.NotEqual(t, a.PwHash, b.PwHash, "name must act as per-user salt")
}

func TestTokenLazyAndStable(t *testing.T) {
	u := Register("alice", "pw")

	t1, err := u.Token()
	require.NoError(t, err)
	t2, err := u.Token()
	require.NoError(t, err)
	assert.True(t, t1.Equal(t2), "repeated calls must return the cached token")

	u.ClearToken()
	t3, err := u.Token()
	require.NoError(t, err)
	assert.False(t, t1.Equal(t3), "a cleared token must not come back")
}

func TestAccessOverwriteSemantics(t *testing.T) {
	u := Register("alice", "pw")

	_, ok := u.HasAccess(VaultAccess())
	assert.False(t, ok, "no access of any kind yet")

	u.GiveAccess(VaultAccess(), RoleReader)
	role, ok := u.HasAccess(VaultAccess())
	require.True(t, ok)
	assert.Equal(t, RoleReader, role)

	// Re-granting overwrites, it does not accumulate.
	u.GiveAccess(VaultAccess(), RoleAdmin)
	role, ok = u.HasAccess(VaultAccess())
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, role)
}

func TestRecordAccessIsPerName(t *testing.T) {
	u := Register("alice", "pw")
	u.GiveAccess(RecordAccess("mail"), RoleEditor)

	role, ok := u.HasAccess(RecordAccess("mail"))
	require.True(t, ok)
	assert.Equal(t, RoleEditor, role)

	_, ok = u.HasAccess(RecordAccess("bank"))
	assert.False(t, ok)
}

package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockvault/internal/domain/record"
)

func TestDomainFieldAccess(t *testing.T) {
	d := NewDomain("userstore")

	_, ok := d.GetField("alice")
	assert.False(t, ok, "lookup miss must be absent, not an error")

	d.SetField("alice", record.TextPayload("encoded user"))
	got, ok := d.GetField("alice")
	require.True(t, ok)
	assert.True(t, got.Equal(record.TextPayload("encoded user")))

	// Overwrite, no history kept.
	d.SetField("alice", record.TextPayload("newer"))
	got, _ = d.GetField("alice")
	assert.True(t, got.Equal(record.TextPayload("newer")))
	assert.Equal(t, 1, d.Size())
}

func TestDomainFill(t *testing.T) {
	d := NewDomain("stats").Fill(map[string]record.Payload{
		"opens": record.NumberPayload(3),
	})
	assert.Equal(t, 1, d.Size())

	d.Fill(nil)
	assert.Equal(t, 0, d.Size())
	d.SetField("k", record.BooleanPayload(true))
	assert.Equal(t, 1, d.Size())
}

func TestDomainSatisfiesBody(t *testing.T) {
	var body record.Body = NewDomain("check")
	body.SetField("k", record.TextPayload("v"))
	body.Flatten()
	got, ok := body.GetField("k")
	require.True(t, ok)
	assert.True(t, got.Equal(record.TextPayload("v")))
}

package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionFlattenDeterminism(t *testing.T) {
	v := NewVersion(1)
	v.Insert("a", NumberPayload(1))
	v.Insert("a", NumberPayload(2))
	v.Delete("b")

	got := v.Flatten()
	require.Len(t, got, 1)
	assert.True(t, got["a"].Equal(NumberPayload(2)))
	_, ok := got["b"]
	assert.False(t, ok)
}

func TestVersionInsertDedupe(t *testing.T) {
	v := NewVersion(1)
	v.Insert("x", TextPayload("one"))
	v.Insert("x", TextPayload("one"))
	assert.Len(t, v.Ops, 1)

	// A different value for the same key is a real edit, not a dupe.
	v.Insert("x", TextPayload("two"))
	assert.Len(t, v.Ops, 2)
	assert.True(t, v.Flatten()["x"].Equal(TextPayload("two")))
}

func TestVersionInsertDeleteCancellation(t *testing.T) {
	v := NewVersion(1)
	v.Insert("x", TextPayload("gone"))
	v.Delete("x")

	assert.Empty(t, v.Ops, "insert followed by delete must leave an empty log")
}

func TestVersionDeleteDedupe(t *testing.T) {
	v := NewVersion(1)
	v.Delete("x")
	v.Delete("x")
	assert.Len(t, v.Ops, 1)
}

func TestVersionMergeIsConcatenation(t *testing.T) {
	v1 := NewVersion(1)
	v1.Insert("a", NumberPayload(1))
	v1.Insert("b", NumberPayload(2))

	v2 := NewVersion(2)
	v2.Insert("a", NumberPayload(10))
	v2.Delete("b")

	// Flattening the merge must equal flattening the concatenated op
	// sequence: the later generation wins.
	concat := NewVersion(0)
	concat.Ops = append(append([]Operation{}, v1.Ops...), v2.Ops...)

	v1.Merge(v2)
	assert.Equal(t, concat.Flatten(), v1.Flatten())

	got := v1.Flatten()
	assert.True(t, got["a"].Equal(NumberPayload(10)))
	_, ok := got["b"]
	assert.False(t, ok)
}

func TestVersionMergeOrderMatters(t *testing.T) {
	mk := func() (*Version, *Version) {
		a := NewVersion(1)
		a.Insert("k", TextPayload("from a"))
		b := NewVersion(2)
		b.Insert("k", TextPayload("from b"))
		return a, b
	}

	a, b := mk()
	a.Merge(b)
	assert.True(t, a.Flatten()["k"].Equal(TextPayload("from b")))

	a, b = mk()
	b.Merge(a)
	assert.True(t, b.Flatten()["k"].Equal(TextPayload("from a")))
}

package record

// OpKind discriminates the two edit operations a version can carry.
type OpKind string

const (
	OpInsert OpKind = "insert"
	OpDelete OpKind = "delete"
)

// Operation is a single edit in a version's append-only log. It is
// immutable once appended.
type Operation struct {
	Kind  OpKind   `json:"op"`
	Key   string   `json:"key"`
	Value *Payload `json:"value,omitempty"`
}

// Equal compares two operations including their payloads.
func (o Operation) Equal(other Operation) bool {
	if o.Kind != other.Kind || o.Key != other.Key {
		return false
	}
	if o.Value == nil || other.Value == nil {
		return o.Value == other.Value
	}
	return o.Value.Equal(*other.Value)
}

// Version is one generation of ordered edits for a record. Operations
// accumulate only through Insert and Delete; once produced a version is
// only ever read via Flatten or appended to via Merge.
type Version struct {
	Sequence uint64      `json:"version"`
	Ops      []Operation `json:"ops"`
}

// NewVersion creates an empty version with the given sequence number.
func NewVersion(sequence uint64) *Version {
	return &Version{Sequence: sequence}
}

// Insert appends an insert operation. An identical insert already present
// in this version makes the call a no-op.
func (v *Version) Insert(key string, value Payload) {
	op := Operation{Kind: OpInsert, Key: key, Value: &value}
	for _, existing := range v.Ops {
		if existing.Equal(op) {
			return
		}
	}
	v.Ops = append(v.Ops, op)
}

// Delete records the removal of a key. An earlier insert for the same key
// in this version is cancelled out instead, as if the key was never
// touched; an equivalent delete already present makes the call a no-op.
func (v *Version) Delete(key string) {
	for i, existing := range v.Ops {
		if existing.Kind == OpInsert && existing.Key == key {
			v.Ops = append(v.Ops[:i], v.Ops[i+1:]...)
			return
		}
	}
	for _, existing := range v.Ops {
		if existing.Kind == OpDelete && existing.Key == key {
			return
		}
	}
	v.Ops = append(v.Ops, Operation{Kind: OpDelete, Key: key})
}

// Flatten replays the operations strictly in append order into a mapping.
// Inserts overwrite prior values, deletes remove the key if present. The
// result is deterministic for a given op sequence.
func (v *Version) Flatten() map[string]Payload {
	out := make(map[string]Payload)
	for _, op := range v.Ops {
		switch op.Kind {
		case OpInsert:
			out[op.Key] = *op.Value
		case OpDelete:
			delete(out, op.Key)
		}
	}
	return out
}

// Merge appends the other version's operations after this version's own,
// preserving both internal orders. This is concatenation, not a key-wise
// merge: the last operation in the combined sequence wins. There is no
// causal ordering for genuinely concurrent edits; a single writer per
// record is assumed.
func (v *Version) Merge(other *Version) {
	v.Ops = append(v.Ops, other.Ops...)
}

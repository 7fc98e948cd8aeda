package record

import "sort"

// Body is the capability a record payload store must provide. It allows
// working with encrypted and cleartext bodies interchangeably: backends
// without a crypto layer simply never see a cleartext implementation.
type Body interface {
	// GetField returns the current value of a field, absent if unset.
	GetField(key string) (Payload, bool)
	// SetField sets the value of a field in the newest generation. It
	// reports false when the body cannot accept writes, so a caller never
	// mistakes a discarded write for a stored one.
	SetField(key string, value Payload) bool
	// Flatten removes versioning and squashes the data to a single level.
	Flatten()
}

// DataBody is the cleartext body implementation: an ordered list of
// version generations. The current state of a record is the fold of
// Flatten over all versions in generation order.
type DataBody struct {
	Versions []*Version `json:"versions"`
}

// NewDataBody creates a body with a single empty first generation.
func NewDataBody() *DataBody {
	return &DataBody{Versions: []*Version{NewVersion(1)}}
}

// head returns the newest generation, growing one if the body was
// decoded from an empty wire form.
func (b *DataBody) head() *Version {
	if len(b.Versions) == 0 {
		b.Versions = []*Version{NewVersion(1)}
	}
	return b.Versions[len(b.Versions)-1]
}

// NextVersion opens a new generation on top of the current one.
func (b *DataBody) NextVersion() *Version {
	v := NewVersion(b.head().Sequence + 1)
	b.Versions = append(b.Versions, v)
	return v
}

// GetField folds all generations in order and looks the key up in the
// combined state.
func (b *DataBody) GetField(key string) (Payload, bool) {
	value, ok := b.combined()[key]
	return value, ok
}

// SetField records an insert in the newest generation.
func (b *DataBody) SetField(key string, value Payload) bool {
	b.head().Insert(key, value)
	return true
}

// DeleteField records a delete in the newest generation.
func (b *DataBody) DeleteField(key string) {
	b.head().Delete(key)
}

// Flatten squashes all generations into a single version holding one
// insert per surviving key, in stable key order.
func (b *DataBody) Flatten() {
	state := b.combined()
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	squashed := NewVersion(b.head().Sequence)
	for _, k := range keys {
		squashed.Insert(k, state[k])
	}
	b.Versions = []*Version{squashed}
}

func (b *DataBody) combined() map[string]Payload {
	merged := NewVersion(0)
	for _, v := range b.Versions {
		merged.Merge(v)
	}
	return merged.Flatten()
}

// EncryptedBody is the opaque ciphertext form of a record body as it
// travels through backends without a crypto capability. Reads report
// absence and writes are refused; the body stays sealed byte for byte.
type EncryptedBody struct {
	Cipher string `json:"cipher"`
}

func (b *EncryptedBody) GetField(string) (Payload, bool) { return Payload{}, false }
func (b *EncryptedBody) SetField(string, Payload) bool   { return false }
func (b *EncryptedBody) Flatten()                        {}

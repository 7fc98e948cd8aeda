// Package meta holds the cleartext bookkeeping model of a vault.
//
// A MetaDomain reuses the record Payload type without any of the version
// or encryption machinery. That is appropriate only for data that is not
// secret but still benefits from structured storage: user registries,
// wrapped key blobs keyed by username, usage counters shared between
// clients.
package meta

import "lockvault/internal/domain/record"

// VaultMetadata is a cheap snapshot of a vault's identity and size.
type VaultMetadata struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Size     int    `json:"size"`
}

// MetaDomain is a named, flat key to payload namespace. Domain names are
// unique within a vault. Field access is direct map manipulation with no
// history.
type MetaDomain struct {
	Name string                    `json:"name"`
	Body map[string]record.Payload `json:"body"`
}

// NewDomain creates an empty domain space.
func NewDomain(name string) *MetaDomain {
	return &MetaDomain{Name: name, Body: make(map[string]record.Payload)}
}

// Fill replaces the domain body wholesale with pre-existing data.
func (d *MetaDomain) Fill(body map[string]record.Payload) *MetaDomain {
	if body == nil {
		body = make(map[string]record.Payload)
	}
	d.Body = body
	return d
}

// GetField looks a key up; absence is a normal outcome.
func (d *MetaDomain) GetField(key string) (record.Payload, bool) {
	value, ok := d.Body[key]
	return value, ok
}

// SetField inserts or overwrites a single value. Metadata is always
// writable, so it never reports a refused write.
func (d *MetaDomain) SetField(key string, value record.Payload) bool {
	if d.Body == nil {
		d.Body = make(map[string]record.Payload)
	}
	d.Body[key] = value
	return true
}

// Flatten is a no-op: metadata has no versioning to collapse. It exists
// so a MetaDomain satisfies the record body capability.
func (d *MetaDomain) Flatten() {}

// Size returns the number of items in this domain.
func (d *MetaDomain) Size() int { return len(d.Body) }

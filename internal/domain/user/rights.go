package user

import (
	"fmt"
	"strings"
)

// Role specifies the capabilities granted on a resource.
type Role string

const (
	// RoleReader only has read access.
	RoleReader Role = "reader"
	// RoleEditor can edit any field in a record.
	RoleEditor Role = "editor"
	// RoleAdmin can modify base structure, squash and delete records.
	RoleAdmin Role = "admin"
)

// AccessKind discriminates the protectable resource classes.
type AccessKind string

const (
	// KindRoot marks the key slot used only to re-encrypt sub-keys.
	KindRoot AccessKind = "root"
	// KindAPI guards the outer API surface.
	KindAPI AccessKind = "api"
	// KindVault guards vault metadata and index files.
	KindVault AccessKind = "vault"
	// KindRecord guards a single record resource inside a vault.
	KindRecord AccessKind = "record"
)

// Access references a protectable resource. It is comparable and usable
// as a map key; the granted Role lives in the map value, so re-granting
// overwrites rather than accumulates.
type Access struct {
	Kind   AccessKind
	Record string
}

// RootAccess references the key re-encryption slot.
func RootAccess() Access { return Access{Kind: KindRoot} }

// APIAccess references the outer API surface.
func APIAccess() Access { return Access{Kind: KindAPI} }

// VaultAccess references vault metadata and index files.
func VaultAccess() Access { return Access{Kind: KindVault} }

// RecordAccess references one record by name.
func RecordAccess(name string) Access { return Access{Kind: KindRecord, Record: name} }

// MarshalText encodes the access reference for use as a JSON map key.
func (a Access) MarshalText() ([]byte, error) {
	if a.Kind == KindRecord {
		return []byte(string(a.Kind) + "/" + a.Record), nil
	}
	return []byte(a.Kind), nil
}

// UnmarshalText reverses MarshalText.
func (a *Access) UnmarshalText(text []byte) error {
	kind, rec, _ := strings.Cut(string(text), "/")
	switch AccessKind(kind) {
	case KindRoot, KindAPI, KindVault:
		*a = Access{Kind: AccessKind(kind)}
	case KindRecord:
		*a = Access{Kind: KindRecord, Record: rec}
	default:
		return fmt.Errorf("unknown access kind %q", kind)
	}
	return nil
}

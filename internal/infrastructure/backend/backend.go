// Package backend defines the byte-level storage contract a vault writes
// through. The vault layer owns encoding and encryption; a backend only
// ever sees opaque blobs addressed by kind and name, which keeps the
// engine composable with any persistence medium.
package backend

import (
	"context"
	"errors"
)

// Kind partitions the entries a vault persists.
type Kind string

const (
	// KindRecord holds serialized (and usually encrypted) records.
	KindRecord Kind = "records"
	// KindMetadata holds cleartext metadata domains.
	KindMetadata Kind = "metadata"
	// KindChecksum holds integrity sums for record entries.
	KindChecksum Kind = "checksums"
	// KindConfig holds the single vault configuration document.
	KindConfig Kind = "config"
)

var (
	// ErrNotFound signals an absent entry. The vault layer converts it
	// into a normal absent result; it is not a failure.
	ErrNotFound = errors.New("entry not found")
	// ErrFailedRead wraps I/O failures while loading an entry.
	ErrFailedRead = errors.New("backend read failed")
	// ErrFailedWrite wraps I/O failures while persisting an entry.
	ErrFailedWrite = errors.New("backend write failed")
)

// Backend is exclusive storage access for one vault. Implementations are
// not required to be safe for concurrent use; the caller serializes.
type Backend interface {
	// Init prepares the storage medium (directory scaffold, schema).
	Init(ctx context.Context) error
	// List names all entries of a kind.
	List(ctx context.Context, kind Kind) ([]string, error)
	// Read loads one entry; ErrNotFound when absent.
	Read(ctx context.Context, kind Kind, name string) ([]byte, error)
	// Write stores one entry, overwriting any previous content.
	Write(ctx context.Context, kind Kind, name string, data []byte) error
	// Delete removes one entry; deleting an absent entry is a no-op.
	Delete(ctx context.Context, kind Kind, name string) error
	// Close releases the storage handle.
	Close() error
}

// Package memory holds vault entries in process memory. Nothing
// survives a restart; it exists for tests and for throwaway vaults.
package memory

import (
	"context"

	"lockvault/internal/infrastructure/backend"
)

type Backend struct {
	entries map[backend.Kind]map[string][]byte
}

func New() *Backend {
	return &Backend{entries: make(map[backend.Kind]map[string][]byte)}
}

func (b *Backend) Init(_ context.Context) error {
	for _, kind := range []backend.Kind{
		backend.KindRecord, backend.KindMetadata,
		backend.KindChecksum, backend.KindConfig,
	} {
		if b.entries[kind] == nil {
			b.entries[kind] = make(map[string][]byte)
		}
	}
	return nil
}

func (b *Backend) List(_ context.Context, kind backend.Kind) ([]string, error) {
	names := make([]string, 0, len(b.entries[kind]))
	for name := range b.entries[kind] {
		names = append(names, name)
	}
	return names, nil
}

func (b *Backend) Read(_ context.Context, kind backend.Kind, name string) ([]byte, error) {
	data, ok := b.entries[kind][name]
	if !ok {
		return nil, backend.ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (b *Backend) Write(_ context.Context, kind backend.Kind, name string, data []byte) error {
	if b.entries[kind] == nil {
		b.entries[kind] = make(map[string][]byte)
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	b.entries[kind][name] = stored
	return nil
}

func (b *Backend) Delete(_ context.Context, kind backend.Kind, name string) error {
	delete(b.entries[kind], name)
	return nil
}

func (b *Backend) Close() error { return nil }

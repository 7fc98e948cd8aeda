// Package file persists a vault as a directory tree. The layout under
// <location>/<name>.vault/ is one subdirectory per entry kind, with the
// configuration document kept as a toml file at the tree root so it
// stays hand-inspectable.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"lockvault/internal/infrastructure/backend"
)

const (
	// Extension marks a vault directory on disk.
	Extension = ".vault"

	dirPerm  = 0o700
	filePerm = 0o600
)

var kindExt = map[backend.Kind]string{
	backend.KindRecord:   ".record",
	backend.KindMetadata: ".meta",
	backend.KindChecksum: ".sum",
	backend.KindConfig:   ".toml",
}

type Backend struct {
	root string
}

// New points a backend at <location>/<name>.vault. The directory does
// not need to exist yet; Init scaffolds it.
func New(location, name string) *Backend {
	return &Backend{root: filepath.Join(location, name+Extension)}
}

// Root returns the vault directory path.
func (b *Backend) Root() string { return b.root }

// Exists reports whether the vault directory is already on disk.
func (b *Backend) Exists() bool {
	info, err := os.Stat(b.root)
	return err == nil && info.IsDir()
}

func (b *Backend) Init(_ context.Context) error {
	for _, kind := range []backend.Kind{
		backend.KindRecord, backend.KindMetadata, backend.KindChecksum,
	} {
		if err := os.MkdirAll(filepath.Join(b.root, string(kind)), dirPerm); err != nil {
			return fmt.Errorf("%w: scaffold %s: %v", backend.ErrFailedWrite, kind, err)
		}
	}
	return nil
}

func (b *Backend) path(kind backend.Kind, name string) string {
	if kind == backend.KindConfig {
		return filepath.Join(b.root, name+kindExt[kind])
	}
	return filepath.Join(b.root, string(kind), name+kindExt[kind])
}

func (b *Backend) List(_ context.Context, kind backend.Kind) ([]string, error) {
	dir := filepath.Join(b.root, string(kind))
	if kind == backend.KindConfig {
		dir = b.root
	}
	items, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: list %s: %v", backend.ErrFailedRead, kind, err)
	}
	ext := kindExt[kind]
	var names []string
	for _, item := range items {
		if item.IsDir() || !strings.HasSuffix(item.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(item.Name(), ext))
	}
	return names, nil
}

func (b *Backend) Read(_ context.Context, kind backend.Kind, name string) ([]byte, error) {
	data, err := os.ReadFile(b.path(kind, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, backend.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %s/%s: %v", backend.ErrFailedRead, kind, name, err)
	}
	return data, nil
}

func (b *Backend) Write(_ context.Context, kind backend.Kind, name string, data []byte) error {
	if err := os.WriteFile(b.path(kind, name), data, filePerm); err != nil {
		return fmt.Errorf("%w: %s/%s: %v", backend.ErrFailedWrite, kind, name, err)
	}
	return nil
}

func (b *Backend) Delete(_ context.Context, kind backend.Kind, name string) error {
	err := os.Remove(b.path(kind, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s/%s: %v", backend.ErrFailedWrite, kind, name, err)
	}
	return nil
}

func (b *Backend) Close() error { return nil }

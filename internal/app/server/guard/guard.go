// Package guard serializes access to a vault instance. The core is not
// internally synchronized, so every adapter call passes through one
// mutex guarding one call at a time.
package guard

import (
	"sync"

	"lockvault/internal/domain/vault"
)

type Guard struct {
	mu    sync.Mutex
	vault *vault.Vault
}

func New(v *vault.Vault) *Guard {
	return &Guard{vault: v}
}

// Acquire locks the guard and hands out the vault. The caller must
// Release when done.
func (g *Guard) Acquire() *vault.Vault {
	g.mu.Lock()
	return g.vault
}

func (g *Guard) Release() {
	g.mu.Unlock()
}

package vault

import (
	"fmt"
	"time"

	"github.com/blang/semver/v4"
	"github.com/pelletier/go-toml/v2"
)

// FormatVersion is the on-disk format this library reads and writes.
// Loading gates on major.minor equality; patch differences are benign.
const FormatVersion = "0.1.0"

// Type describes the permission layout a vault was created with.
type Type string

const (
	// TypeSoloUser binds the vault to exactly one named user.
	TypeSoloUser Type = "solo_user"
	// TypeAdministrated creates a root admin user which can later
	// register others.
	TypeAdministrated Type = "administrated"
)

// Config is the cleartext configuration document of a vault, stored
// through the backend's config kind as toml.
type Config struct {
	Version    string    `toml:"version"`
	VaultType  Type      `toml:"vault_type"`
	CreatedAt  time.Time `toml:"created_at"`
	ModifiedAt time.Time `toml:"modified_at"`
}

func newConfig(vaultType Type) *Config {
	now := time.Now().UTC()
	return &Config{
		Version:    FormatVersion,
		VaultType:  vaultType,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// touch updates the modification timestamp.
func (c *Config) touch() {
	c.ModifiedAt = time.Now().UTC()
}

func (c *Config) encode() ([]byte, error) {
	return toml.Marshal(c)
}

func decodeConfig(data []byte) (*Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: corrupt config: %v", ErrFailedLoading, err)
	}
	if err := c.checkCompatible(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) checkCompatible() error {
	stored, err := semver.Parse(c.Version)
	if err != nil {
		return fmt.Errorf("%w: unparsable version %q: %v", ErrFailedLoading, c.Version, err)
	}
	supported := semver.MustParse(FormatVersion)
	if stored.Major != supported.Major || stored.Minor != supported.Minor {
		return fmt.Errorf("%w: vault is %s, library supports %s",
			ErrIncompatibleVersion, c.Version, FormatVersion)
	}
	return nil
}

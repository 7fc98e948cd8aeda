package vault

import "strings"

// Generator accumulates the parameters of a new vault. All backends
// share the same user and permission bootstrap, so creation goes
// through one builder regardless of where the bytes land.
//
// The secret passes through the key derivation and never rests in the
// finished vault; only its hash and the wrapped vault key are stored.
type Generator struct {
	name      string
	location  string
	vaultType Type
	username  string
	secret    string
}

func NewGenerator() *Generator {
	return &Generator{}
}

// Path sets the vault's identity: a name and the location it lives at.
func (g *Generator) Path(name, location string) *Generator {
	g.name = name
	g.location = location
	return g
}

// SoloUser binds the vault to a single named user.
func (g *Generator) SoloUser(username, secret string) *Generator {
	g.vaultType = TypeSoloUser
	g.username = username
	g.secret = secret
	return g
}

// Administrated creates the vault with a root admin account.
func (g *Generator) Administrated(secret string) *Generator {
	g.vaultType = TypeAdministrated
	g.username = "admin"
	g.secret = secret
	return g
}

func (g *Generator) validate() error {
	if g.name == "" || g.location == "" || g.vaultType == "" {
		return ErrIncompleteGenerator
	}
	if !validName(g.name) {
		return ErrInvalidName
	}
	if strings.ContainsRune(g.location, '\x00') {
		return ErrInvalidPath
	}
	if g.username == "" || g.secret == "" {
		return ErrIncompleteGenerator
	}
	return nil
}

// validName keeps names usable as file and database identifiers.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}

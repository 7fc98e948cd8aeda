package user

import (
	"encoding/json"
	"fmt"

	"lockvault/internal/domain/meta"
	"lockvault/internal/domain/record"
)

// StoredUser couples a user identity with its wrapped key material. The
// key blobs held here are already encrypted; the store treats them as
// opaque strings and assumes nothing about their secrecy.
type StoredUser struct {
	User User              `json:"user"`
	Keys map[Access]string `json:"keys"`
}

// Store is the merged user registry and keystore of a vault. It is
// persisted through a cleartext metadata domain, so every key it holds
// must already be wrapped before it goes in.
type Store struct {
	users map[string]*StoredUser
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{users: make(map[string]*StoredUser)}
}

// AddUser registers an identity. The first wrapped key added for a user
// usually sits in the root slot.
func (s *Store) AddUser(u *User) {
	s.users[u.Name] = &StoredUser{User: *u, Keys: make(map[Access]string)}
}

// DeleteUser removes an identity and all its wrapped keys.
func (s *Store) DeleteUser(name string) {
	delete(s.users, name)
}

// GetUser returns a registered identity.
func (s *Store) GetUser(name string) (*User, bool) {
	su, ok := s.users[name]
	if !ok {
		return nil, false
	}
	return &su.User, true
}

// AddKey binds a wrapped key blob to a user and access slot.
func (s *Store) AddKey(name string, access Access, wrapped string) bool {
	su, ok := s.users[name]
	if !ok {
		return false
	}
	su.Keys[access] = wrapped
	return true
}

// Key returns the wrapped key blob for a user and access slot.
func (s *Store) Key(name string, access Access) (string, bool) {
	su, ok := s.users[name]
	if !ok {
		return "", false
	}
	wrapped, ok := su.Keys[access]
	return wrapped, ok
}

// AdoptSessions carries the live session tokens of a previous store
// generation over to this one. Tokens are never persisted, so a store
// rebuilt from its domain form starts without them; users that no longer
// exist in the new generation lose their session.
func (s *Store) AdoptSessions(old *Store) {
	if old == nil {
		return
	}
	for name, su := range s.users {
		if prev, ok := old.users[name]; ok {
			su.User.token = prev.User.token
		}
	}
}

// Size returns the number of registered users.
func (s *Store) Size() int { return len(s.users) }

// Names lists all registered user names.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.users))
	for name := range s.users {
		names = append(names, name)
	}
	return names
}

// ToDomain serializes the store into a metadata domain: one text payload
// per user, keyed by name.
func (s *Store) ToDomain(domain string) (*meta.MetaDomain, error) {
	d := meta.NewDomain(domain)
	for name, su := range s.users {
		raw, err := json.Marshal(su)
		if err != nil {
			return nil, fmt.Errorf("encode user %q: %w", name, err)
		}
		d.SetField(name, record.TextPayload(string(raw)))
	}
	return d, nil
}

// StoreFromDomain rebuilds a store from its metadata domain form.
func StoreFromDomain(d *meta.MetaDomain) (*Store, error) {
	s := NewStore()
	for name, payload := range d.Body {
		if payload.Kind != record.KindText {
			return nil, fmt.Errorf("user entry %q is not a text payload", name)
		}
		var su StoredUser
		if err := json.Unmarshal([]byte(payload.Text), &su); err != nil {
			return nil, fmt.Errorf("decode user %q: %w", name, err)
		}
		if su.Keys == nil {
			su.Keys = make(map[Access]string)
		}
		s.users[name] = &su
	}
	return s, nil
}

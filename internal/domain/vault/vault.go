// Package vault composes the crypto engine, the in-memory caches and a
// storage backend into the top-level container of the system. A vault
// instance is not internally synchronized; adapters serialize access.
package vault

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"lockvault/internal/crypto"
	"lockvault/internal/domain/meta"
	"lockvault/internal/domain/record"
	"lockvault/internal/domain/user"
	"lockvault/internal/infrastructure/backend"
)

const (
	configEntry = "vault"

	// userStoreDomain is the reserved metadata domain holding the user
	// registry and the wrapped vault keys.
	userStoreDomain = "userstore"
)

// storedRecord is the persisted form of one record. Exactly one of
// Cipher and Body is set: Cipher when the body was sealed by an engine,
// Body when the vault runs without a crypto capability.
type storedRecord struct {
	Header record.Header    `json:"header"`
	Cipher string           `json:"cipher,omitempty"`
	Body   *record.DataBody `json:"body,omitempty"`
}

// Vault is the top-level container: a name and location, an exclusive
// backend handle, the primary engine once unlocked, and the in-memory
// record and metadata caches.
type Vault struct {
	name     string
	location string
	config   *Config
	store    backend.Backend
	engine   *crypto.Engine
	users    *user.Store
	records  map[string]*record.Record
	domains  map[string]*meta.MetaDomain
}

// Create builds a brand new vault from a finalised generator. The
// primary key is generated, wrapped under the initial user's secret and
// stored; it never rests in cleartext.
func Create(ctx context.Context, gen *Generator, store backend.Backend) (*Vault, error) {
	if err := gen.validate(); err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedInitialise, err)
	}
	if _, err := store.Read(ctx, backend.KindConfig, configEntry); err == nil {
		return nil, fmt.Errorf("%w: vault %q", ErrAlreadyExists, gen.name)
	} else if !errors.Is(err, backend.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrFailedCreation, err)
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedCreation, err)
	}
	engine, err := crypto.NewEngine(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedCreation, err)
	}
	fold, err := crypto.NewKeyfold(gen.secret, gen.username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedCreation, err)
	}
	wrapped, err := fold.Wrap(engine)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedCreation, err)
	}

	users := user.NewStore()
	u := user.Register(gen.username, gen.secret)
	u.GiveAccess(user.RootAccess(), user.RoleAdmin)
	u.GiveAccess(user.VaultAccess(), user.RoleAdmin)
	users.AddUser(u)
	users.AddKey(gen.username, user.RootAccess(), wrapped)

	v := &Vault{
		name:     gen.name,
		location: gen.location,
		config:   newConfig(gen.vaultType),
		store:    store,
		engine:   engine,
		users:    users,
		records:  make(map[string]*record.Record),
		domains:  make(map[string]*meta.MetaDomain),
	}
	if err := v.Sync(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedCreation, err)
	}
	return v, nil
}

// Open reopens an existing vault. The configuration version gate runs
// before anything else is read; the record bodies stay sealed until
// Authenticate unlocks the engine.
func Open(ctx context.Context, name, location string, store backend.Backend) (*Vault, error) {
	raw, err := store.Read(ctx, backend.KindConfig, configEntry)
	if errors.Is(err, backend.ErrNotFound) {
		return nil, fmt.Errorf("%w: no vault at %s/%s", ErrFailedLoading, location, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoading, err)
	}
	config, err := decodeConfig(raw)
	if err != nil {
		return nil, err
	}

	v := &Vault{
		name:     name,
		location: location,
		config:   config,
		store:    store,
		users:    user.NewStore(),
		records:  make(map[string]*record.Record),
		domains:  make(map[string]*meta.MetaDomain),
	}
	if err := v.Fetch(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoading, err)
	}
	return v, nil
}

// Authenticate verifies a user's secret and issues their session token.
// On first success it also unwraps the vault's primary key and opens
// any sealed record bodies in the cache.
//
// All failure paths collapse into one error value so callers cannot
// distinguish an unknown user from a wrong secret.
func (v *Vault) Authenticate(username, secret string) (user.Token, error) {
	u, ok := v.users.GetUser(username)
	if !ok || !u.Verify(secret) {
		return user.Token{}, crypto.ErrAuthenticationFailure
	}

	if v.engine == nil {
		wrapped, ok := v.users.Key(username, user.RootAccess())
		if ok {
			fold, err := crypto.NewKeyfold(secret, username)
			if err != nil {
				return user.Token{}, err
			}
			engine, err := fold.Unwrap(wrapped)
			if err != nil {
				return user.Token{}, err
			}
			v.engine = engine
			if err := v.openRecords(); err != nil {
				return user.Token{}, err
			}
		}
	}
	return u.Token()
}

// Deauthenticate retires a session token. It reports whether the token
// actually belonged to the named user's current session.
func (v *Vault) Deauthenticate(username string, token user.Token) bool {
	u, ok := v.users.GetUser(username)
	if !ok || !u.MatchToken(token) {
		return false
	}
	u.ClearToken()
	return true
}

// ValidSession resolves a bearer token to the user holding it.
func (v *Vault) ValidSession(token user.Token) (string, bool) {
	for _, name := range v.users.Names() {
		u, ok := v.users.GetUser(name)
		if ok && u.MatchToken(token) {
			return name, true
		}
	}
	return "", false
}

// Metadata returns a cheap identity and size snapshot.
func (v *Vault) Metadata() meta.VaultMetadata {
	return meta.VaultMetadata{
		Name:     v.name,
		Location: v.location,
		Size:     len(v.records),
	}
}

// Fetch replaces the whole in-memory cache from the backend. It is a
// full reload, not an incremental one.
func (v *Vault) Fetch(ctx context.Context) error {
	names, err := v.store.List(ctx, backend.KindRecord)
	if err != nil {
		return err
	}
	records := make(map[string]*record.Record, len(names))
	for _, name := range names {
		r, err := v.loadRecord(ctx, name)
		if err != nil {
			return err
		}
		records[name] = r
	}

	domainNames, err := v.store.List(ctx, backend.KindMetadata)
	if err != nil {
		return err
	}
	domains := make(map[string]*meta.MetaDomain, len(domainNames))
	for _, name := range domainNames {
		d, err := v.loadDomain(ctx, name)
		if err != nil {
			return err
		}
		domains[name] = d
	}

	users := user.NewStore()
	if d, ok := domains[userStoreDomain]; ok {
		users, err = user.StoreFromDomain(d)
		if err != nil {
			return err
		}
		delete(domains, userStoreDomain)
	}
	// The reloaded store knows nothing about running sessions; only an
	// explicit deauthentication retires a token.
	users.AdoptSessions(v.users)

	v.records = records
	v.domains = domains
	v.users = users
	return nil
}

// Pull loads a single record from the backend into the cache. An absent
// record is a normal outcome, not an error.
func (v *Vault) Pull(ctx context.Context, name string) (*record.Record, bool, error) {
	r, err := v.loadRecord(ctx, name)
	if errors.Is(err, backend.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	v.records[name] = r
	return r, true, nil
}

// Sync persists all in-memory state. It is best-effort-atomic per
// entity only: a failure mid-way leaves earlier entities updated and
// later ones stale.
func (v *Vault) Sync(ctx context.Context) error {
	for name, r := range v.records {
		if err := v.storeRecord(ctx, name, r); err != nil {
			return err
		}
	}
	for name, d := range v.domains {
		if err := v.storeDomain(ctx, name, d); err != nil {
			return err
		}
	}
	userDomain, err := v.users.ToDomain(userStoreDomain)
	if err != nil {
		return err
	}
	if err := v.storeDomain(ctx, userStoreDomain, userDomain); err != nil {
		return err
	}

	v.config.touch()
	raw, err := v.config.encode()
	if err != nil {
		return err
	}
	return v.store.Write(ctx, backend.KindConfig, configEntry, raw)
}

// Headers lists the cleartext headers of all cached records in stable
// name order. Headers never carry secret data, so no engine is needed.
func (v *Vault) Headers() []record.Header {
	names := make([]string, 0, len(v.records))
	for name := range v.records {
		names = append(names, name)
	}
	sort.Strings(names)

	headers := make([]record.Header, 0, len(names))
	for _, name := range names {
		headers = append(headers, v.records[name].Header)
	}
	return headers
}

// GetRecord returns a cached record.
func (v *Vault) GetRecord(name string) (*record.Record, bool) {
	r, ok := v.records[name]
	return r, ok
}

// Contains reports whether a record is in the cache.
func (v *Vault) Contains(name string) bool {
	_, ok := v.records[name]
	return ok
}

// AddRecord creates a new, empty record in the cache. It becomes
// durable on the next Sync.
func (v *Vault) AddRecord(name, category string, tags []string) error {
	if !validName(name) {
		return fmt.Errorf("%w: record %q", ErrInvalidName, name)
	}
	if _, ok := v.records[name]; ok {
		return fmt.Errorf("%w: record %q", ErrAlreadyExists, name)
	}
	v.records[name] = record.New(name, category, tags)
	return nil
}

// DeleteRecord removes a record from the cache and the backend.
// Deleting an absent record is a no-op.
func (v *Vault) DeleteRecord(ctx context.Context, name string) error {
	delete(v.records, name)
	if err := v.store.Delete(ctx, backend.KindRecord, name); err != nil {
		return err
	}
	return v.store.Delete(ctx, backend.KindChecksum, name)
}

// AddData sets a field in a record's newest generation. It reports
// false when the record is absent or its body is not loaded.
func (v *Vault) AddData(recordName, key string, value record.Payload) bool {
	r, ok := v.records[recordName]
	if !ok {
		return false
	}
	return r.AddData(key, value)
}

// GetData reads a field from a record's current flattened view.
func (v *Vault) GetData(recordName, key string) (record.Payload, bool) {
	r, ok := v.records[recordName]
	if !ok {
		return record.Payload{}, false
	}
	return r.GetData(key)
}

// MetaAddDomain registers a new, empty metadata domain.
func (v *Vault) MetaAddDomain(name string) error {
	if !validName(name) || name == userStoreDomain {
		return fmt.Errorf("%w: domain %q", ErrInvalidName, name)
	}
	if _, ok := v.domains[name]; ok {
		return fmt.Errorf("%w: domain %q", ErrAlreadyExists, name)
	}
	v.domains[name] = meta.NewDomain(name)
	return nil
}

// MetaPullDomain returns a metadata domain, loading it from the backend
// when it is not cached yet. Absence is a normal outcome.
func (v *Vault) MetaPullDomain(ctx context.Context, name string) (*meta.MetaDomain, bool, error) {
	if d, ok := v.domains[name]; ok {
		return d, true, nil
	}
	d, err := v.loadDomain(ctx, name)
	if errors.Is(err, backend.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	v.domains[name] = d
	return d, true, nil
}

// MetaPushDomain replaces a domain wholesale and persists it.
func (v *Vault) MetaPushDomain(ctx context.Context, d *meta.MetaDomain) error {
	if !validName(d.Name) || d.Name == userStoreDomain {
		return fmt.Errorf("%w: domain %q", ErrInvalidName, d.Name)
	}
	v.domains[d.Name] = d
	return v.storeDomain(ctx, d.Name, d)
}

// MetaSet writes one field into a cached domain. It reports false when
// the domain is absent.
func (v *Vault) MetaSet(domain, key string, value record.Payload) bool {
	d, ok := v.domains[domain]
	if !ok {
		return false
	}
	return d.SetField(key, value)
}

// MetaGet reads one field from a cached domain.
func (v *Vault) MetaGet(domain, key string) (record.Payload, bool) {
	d, ok := v.domains[domain]
	if !ok {
		return record.Payload{}, false
	}
	return d.GetField(key)
}

// MetaExists reports whether a domain is cached.
func (v *Vault) MetaExists(domain string) bool {
	_, ok := v.domains[domain]
	return ok
}

// Close persists outstanding state and releases the backend.
func (v *Vault) Close(ctx context.Context) error {
	if err := v.Sync(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedClosing, err)
	}
	if err := v.store.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedClosing, err)
	}
	return nil
}

func (v *Vault) loadRecord(ctx context.Context, name string) (*record.Record, error) {
	raw, err := v.store.Read(ctx, backend.KindRecord, name)
	if err != nil {
		return nil, err
	}
	if err := v.verifyChecksum(ctx, name, raw); err != nil {
		return nil, err
	}

	var stored storedRecord
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("%w: record %q: %v", ErrFailedLoading, name, err)
	}

	r := &record.Record{Header: stored.Header}
	switch {
	case stored.Cipher != "" && v.engine != nil:
		var body record.DataBody
		if err := v.engine.Decrypt(stored.Cipher, &body); err != nil {
			return nil, fmt.Errorf("record %q: %w", name, err)
		}
		r.Body = &body
	case stored.Cipher != "":
		r.Body = &record.EncryptedBody{Cipher: stored.Cipher}
	case stored.Body != nil:
		r.Body = stored.Body
	}
	return r, nil
}

func (v *Vault) storeRecord(ctx context.Context, name string, r *record.Record) error {
	stored := storedRecord{Header: r.Header}
	switch body := r.Body.(type) {
	case *record.DataBody:
		if v.engine != nil {
			cipher, err := v.engine.Encrypt(body)
			if err != nil {
				return fmt.Errorf("record %q: %w", name, err)
			}
			stored.Cipher = cipher
		} else {
			stored.Body = body
		}
	case *record.EncryptedBody:
		// Sealed bodies travel through unchanged.
		stored.Cipher = body.Cipher
	}

	raw, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("%w: record %q: %v", backend.ErrFailedWrite, name, err)
	}
	if err := v.store.Write(ctx, backend.KindRecord, name, raw); err != nil {
		return err
	}
	return v.store.Write(ctx, backend.KindChecksum, name, []byte(checksum(raw)))
}

func (v *Vault) loadDomain(ctx context.Context, name string) (*meta.MetaDomain, error) {
	raw, err := v.store.Read(ctx, backend.KindMetadata, name)
	if err != nil {
		return nil, err
	}
	var d meta.MetaDomain
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("%w: domain %q: %v", ErrFailedLoading, name, err)
	}
	return &d, nil
}

func (v *Vault) storeDomain(ctx context.Context, name string, d *meta.MetaDomain) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("%w: domain %q: %v", backend.ErrFailedWrite, name, err)
	}
	return v.store.Write(ctx, backend.KindMetadata, name, raw)
}

// openRecords replaces sealed body caches with decrypted ones once the
// engine is available.
func (v *Vault) openRecords() error {
	for name, r := range v.records {
		sealed, ok := r.Body.(*record.EncryptedBody)
		if !ok {
			continue
		}
		var body record.DataBody
		if err := v.engine.Decrypt(sealed.Cipher, &body); err != nil {
			return fmt.Errorf("record %q: %w", name, err)
		}
		r.Body = &body
	}
	return nil
}

// verifyChecksum compares a stored entry against its recorded integrity
// sum. A missing sum is tolerated; a mismatching one is not.
func (v *Vault) verifyChecksum(ctx context.Context, name string, raw []byte) error {
	want, err := v.store.Read(ctx, backend.KindChecksum, name)
	if errors.Is(err, backend.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if got := checksum(raw); got != string(want) {
		return fmt.Errorf("%w: record %q", ErrFailedSelfTest, name)
	}
	return nil
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

package vault

import "errors"

var (
	// ErrAlreadyExists signals a name collision for a vault or record.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidPath rejects an unusable vault location.
	ErrInvalidPath = errors.New("invalid vault path")
	// ErrInvalidName rejects an unusable vault or record name.
	ErrInvalidName = errors.New("invalid name")
	// ErrIncompleteGenerator means the builder was finalised with
	// required fields missing.
	ErrIncompleteGenerator = errors.New("incomplete vault generator")
	// ErrFailedSelfTest means a stored entry failed its integrity check.
	ErrFailedSelfTest = errors.New("vault self test failed")
	// ErrFailedInitialise wraps backend scaffold failures.
	ErrFailedInitialise = errors.New("failed to initialise vault")
	// ErrFailedCreation wraps failures while creating a new vault.
	ErrFailedCreation = errors.New("failed to create vault")
	// ErrFailedLoading wraps failures while reopening a vault.
	ErrFailedLoading = errors.New("failed to load vault")
	// ErrFailedClosing wraps failures while shutting a vault down.
	ErrFailedClosing = errors.New("failed to close vault")
	// ErrIncompatibleVersion rejects a vault written by an unsupported
	// library version. There is no silent upgrade path.
	ErrIncompatibleVersion = errors.New("incompatible vault version")
	// ErrNotAuthenticated guards operations that need an unlocked engine.
	ErrNotAuthenticated = errors.New("vault is not authenticated")
)

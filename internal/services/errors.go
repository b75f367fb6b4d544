package services

import "errors"

var (
	// ErrStorageUnavailable is returned when the persistence primitive itself
	// fails. Absent or malformed documents never produce it.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotLoaded is returned by mutators called before Load has finished.
	ErrNotLoaded = errors.New("store not loaded")
	// ErrInvalidEntry is returned by AddEntry for entries that break the
	// entry invariants.
	ErrInvalidEntry = errors.New("invalid journal entry")
	// ErrDuplicateEntry is returned by AddEntry when the id is already stored.
	ErrDuplicateEntry = errors.New("duplicate journal entry id")
	// ErrAuthenticationFailed is for Authenticator implementations that reject
	// credentials.
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// Package database provides the key/value persistence primitive the journal
// and profile stores sit on, with memory, file, Redis, PostgreSQL and MongoDB
// backends.
package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrUnavailable marks failures of the underlying storage itself.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrCorrupt marks a stored value that exists but cannot be read back.
	ErrCorrupt = errors.New("stored value is corrupt")
	// ErrInvalidKey is returned for keys outside [A-Za-z0-9_.-].
	ErrInvalidKey = errors.New("invalid key")
)

// KeyValueStore is a process-wide string store. Values are whole documents;
// there is no multi-key atomicity.
type KeyValueStore interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,128}$`)

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func unavailable(op, key string, err error) error {
	return fmt.Errorf("%s %q: %w: %w", op, key, ErrUnavailable, err)
}

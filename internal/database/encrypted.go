package database

import (
	"context"
	"fmt"

	"github.com/AnshRaj112/voice-journal/pkg/utils"
)

// EncryptedStore encrypts values with AES-256-GCM before handing them to the
// wrapped store. Keys are stored in the clear.
type EncryptedStore struct {
	inner KeyValueStore
	key   []byte
}

// NewEncryptedStore wraps inner. key must be 32 bytes.
func NewEncryptedStore(inner KeyValueStore, key []byte) (*EncryptedStore, error) {
	if len(key) != utils.KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", utils.KeySize, len(key))
	}
	return &EncryptedStore{inner: inner, key: append([]byte(nil), key...)}, nil
}

// Get returns ErrCorrupt when the stored value cannot be decrypted with this key.
func (s *EncryptedStore) Get(ctx context.Context, key string) (string, bool, error) {
	sealed, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	plain, err := utils.Decrypt(s.key, sealed)
	if err != nil {
		return "", false, fmt.Errorf("decrypting %q: %w: %v", key, ErrCorrupt, err)
	}
	return plain, true, nil
}

func (s *EncryptedStore) Set(ctx context.Context, key, value string) error {
	sealed, err := utils.Encrypt(s.key, value)
	if err != nil {
		return fmt.Errorf("encrypting %q: %w", key, err)
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *EncryptedStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}

package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/bnema/marvel-dashboard/internal/ports"
)

const TokenStorageKey = "auth_token"

// CredentialStore persists the single session token encrypted at rest.
type CredentialStore struct {
	storage ports.Storage
	cipher  ports.TokenCipher
}

func NewCredentialStore(storage ports.Storage, cipher ports.TokenCipher) *CredentialStore {
	return &CredentialStore{storage: storage, cipher: cipher}
}

func (c *CredentialStore) Save(ctx context.Context, token string) error {
	envelope, err := c.cipher.Encrypt(token)
	if err != nil {
		return fmt.Errorf("encrypt token: %w", err)
	}

	if err := c.storage.Put(ctx, TokenStorageKey, envelope); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	return nil
}

// Load reports ok=false when no token is stored.
func (c *CredentialStore) Load(ctx context.Context) (string, bool, error) {
	envelope, err := c.storage.Get(ctx, TokenStorageKey)
	if err != nil {
		if errors.Is(err, domain.ErrStorageKeyNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read token: %w", err)
	}

	token, err := c.cipher.Decrypt(envelope)
	if err != nil {
		return "", false, fmt.Errorf("decrypt token: %w", err)
	}

	return token, true, nil
}

func (c *CredentialStore) Remove(ctx context.Context) error {
	if err := c.storage.Delete(ctx, TokenStorageKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

package ports

import "context"

// Storage is the local key-value store holding the encrypted session token,
// the diagnostic log and the last dashboard location. Get returns
// domain.ErrStorageKeyNotFound for absent keys.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

package chain

import (
	"context"
	"errors"
	"fmt"

	passstore "github.com/bnema/marvel-dashboard/internal/adapters/storage/pass"
	tomlstore "github.com/bnema/marvel-dashboard/internal/adapters/storage/toml"
	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/bnema/marvel-dashboard/internal/ports"
)

// Store layers a preferred backend over a local one. The fallback only holds
// keys written while the primary was unreachable; such copies move back to
// the primary on the next read that finds the primary healthy.
//
// Deletes always reach both backends so a removed session token cannot
// resurface from a stale fallback copy.
type Store struct {
	primary  ports.Storage
	fallback ports.Storage
}

var _ ports.Storage = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary storage is nil")
	errNilFallbackStore = errors.New("fallback storage is nil")
)

func NewStore(primary ports.Storage, fallback ports.Storage) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

// NewPassFirstWithTOMLFallback keeps keys in pass under prefix and falls back
// to the TOML file at path.
func NewPassFirstWithTOMLFallback(prefix string, path string) (*Store, error) {
	fallback, err := tomlstore.NewStore(path)
	if err != nil {
		return nil, fmt.Errorf("create toml fallback: %w", err)
	}

	return NewStore(passstore.NewStore(prefix), fallback)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		// Best effort: reads prefer the primary copy anyway.
		_ = s.fallback.Delete(ctx, key)
		return nil
	}
	if isCanceled(err) {
		return err
	}

	if fallbackErr := s.fallback.Put(ctx, key, value); fallbackErr != nil {
		return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if isCanceled(err) {
		return "", err
	}

	value, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr != nil {
		if errors.Is(err, domain.ErrStorageKeyNotFound) && errors.Is(fallbackErr, domain.ErrStorageKeyNotFound) {
			return "", fmt.Errorf("%w: %s", domain.ErrStorageKeyNotFound, key)
		}
		return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
	}

	if errors.Is(err, domain.ErrStorageKeyNotFound) {
		s.promote(ctx, key, value)
	}
	return value, nil
}

// promote moves a fallback copy into a primary that answered but lacked key.
func (s *Store) promote(ctx context.Context, key string, value string) {
	if err := s.primary.Put(ctx, key, value); err != nil {
		return
	}
	_ = s.fallback.Delete(ctx, key)
}

// Delete removes key from both backends. A missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	primaryErr := ignoreMissing(s.primary.Delete(ctx, key))
	if isCanceled(primaryErr) {
		return primaryErr
	}
	fallbackErr := ignoreMissing(s.fallback.Delete(ctx, key))

	var errs []error
	if primaryErr != nil {
		errs = append(errs, fmt.Errorf("primary backend delete failed: %w", primaryErr))
	}
	if fallbackErr != nil {
		errs = append(errs, fmt.Errorf("fallback backend delete failed: %w", fallbackErr))
	}
	return errors.Join(errs...)
}

func ignoreMissing(err error) error {
	if errors.Is(err, domain.ErrStorageKeyNotFound) {
		return nil
	}
	return err
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

package location

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/bnema/marvel-dashboard/internal/ports"
)

const StorageKey = "location"

// Address is the dashboard location ("/?tab=series&seriesSearch=Avengers")
// kept in Storage so the next invocation resumes where the last one stopped.
type Address struct {
	storage ports.Storage

	mu    sync.RWMutex
	path  string
	query url.Values
}

var _ ports.Location = (*Address)(nil)

// Load restores the persisted address, or "/" when none was saved.
func Load(ctx context.Context, storage ports.Storage) (*Address, error) {
	raw, err := storage.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, domain.ErrStorageKeyNotFound) {
			return &Address{storage: storage, path: "/", query: url.Values{}}, nil
		}
		return nil, fmt.Errorf("load location: %w", err)
	}

	return Parse(storage, raw)
}

// Parse builds an address from raw without touching Storage.
func Parse(storage ports.Storage, raw string) (*Address, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "/"
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse location %q: %w", raw, err)
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}

	return &Address{storage: storage, path: path, query: parsed.Query()}, nil
}

func (a *Address) Query() url.Values {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return cloneValues(a.query)
}

func (a *Address) Replace(ctx context.Context, query url.Values) error {
	a.mu.Lock()
	a.query = cloneValues(query)
	raw := a.stringLocked()
	a.mu.Unlock()

	if err := a.storage.Put(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("save location: %w", err)
	}
	return nil
}

func (a *Address) Path() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.path
}

func (a *Address) String() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.stringLocked()
}

func (a *Address) stringLocked() string {
	u := url.URL{Path: a.path, RawQuery: a.query.Encode()}
	return u.String()
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for key, vals := range values {
		out[key] = append([]string(nil), vals...)
	}
	return out
}

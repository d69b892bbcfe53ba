package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/bnema/marvel-dashboard/internal/ports"
)

const (
	LogStorageKey = "appLogs"

	// DefaultLogCapacity bounds the persisted log; the oldest entries are
	// dropped first.
	DefaultLogCapacity = 1000
)

// LogBook is the append-only diagnostic log kept in Storage as a JSON array.
type LogBook struct {
	storage  ports.Storage
	clock    ports.Clock
	capacity int

	mu sync.Mutex
}

func NewLogBook(storage ports.Storage, clock ports.Clock, capacity int) *LogBook {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &LogBook{storage: storage, clock: clock, capacity: capacity}
}

func (b *LogBook) Info(ctx context.Context, message string, data map[string]any) error {
	return b.Append(ctx, domain.LogEntry{Level: domain.LogLevelInfo, Message: message, Data: data})
}

func (b *LogBook) Warn(ctx context.Context, message string, data map[string]any) error {
	return b.Append(ctx, domain.LogEntry{Level: domain.LogLevelWarn, Message: message, Data: data})
}

func (b *LogBook) Error(ctx context.Context, message string, data map[string]any) error {
	return b.Append(ctx, domain.LogEntry{Level: domain.LogLevelError, Message: message, Data: data})
}

// Append stamps entries without a timestamp with the current time.
func (b *LogBook) Append(ctx context.Context, entry domain.LogEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = b.clock.Now().UTC()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entries, err := b.load(ctx)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if overflow := len(entries) - b.capacity; overflow > 0 {
		entries = entries[overflow:]
	}

	return b.save(ctx, entries)
}

func (b *LogBook) Entries(ctx context.Context) ([]domain.LogEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.load(ctx)
}

func (b *LogBook) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.storage.Delete(ctx, LogStorageKey); err != nil {
		return fmt.Errorf("clear logs: %w", err)
	}
	return nil
}

func (b *LogBook) load(ctx context.Context) ([]domain.LogEntry, error) {
	raw, err := b.storage.Get(ctx, LogStorageKey)
	if err != nil {
		if errors.Is(err, domain.ErrStorageKeyNotFound) {
			return []domain.LogEntry{}, nil
		}
		return nil, fmt.Errorf("read logs: %w", err)
	}

	var entries []domain.LogEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode logs: %w", err)
	}
	if entries == nil {
		entries = []domain.LogEntry{}
	}

	return entries, nil
}

func (b *LogBook) save(ctx context.Context, entries []domain.LogEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode logs: %w", err)
	}

	if err := b.storage.Put(ctx, LogStorageKey, string(data)); err != nil {
		return fmt.Errorf("write logs: %w", err)
	}
	return nil
}

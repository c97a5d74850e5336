// Package storage is the durable key-value layer the session store persists
// into. Values are strings; batched operations are all-or-nothing on every
// backend.
//
// Backends:
//   - SQLiteStorage: a local file (default), schema managed by goose.
//   - RedisStorage: a shared Redis instance.
//   - MemoryStorage: process-local, used in tests and with -s memory.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrStorage matches every failure reported by a backend.
var ErrStorage = errors.New("storage")

// ErrClosed is returned by every operation after Close.
var ErrClosed = fmt.Errorf("%w: closed", ErrStorage)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Pair is one key/value entry to write.
type Pair struct {
	Key   string
	Value string
}

// Lookup is one MultiGet result. Found is false when the key has no entry,
// in which case Value is empty.
type Lookup struct {
	Key   string
	Value string
	Found bool
}

// Storage is an asynchronous-style durable key-value store. Every call may
// block on I/O and honors ctx.
type Storage interface {
	// MultiGet reads keys in one batch. The result has one Lookup per key,
	// in the order of keys.
	MultiGet(ctx context.Context, keys []string) ([]Lookup, error)
	// MultiSet writes all pairs atomically.
	MultiSet(ctx context.Context, pairs []Pair) error
	// MultiRemove deletes all keys atomically. Missing keys are not an error.
	MultiRemove(ctx context.Context, keys []string) error
	// GetItem reads one key; found is false when it has no entry.
	GetItem(ctx context.Context, key string) (value string, found bool, err error)
	// SetItem writes one key.
	SetItem(ctx context.Context, key, value string) error
	Close() error
}

// Values indexes lookups by key, keeping only the ones that were found.
func Values(lookups []Lookup) map[string]string {
	out := make(map[string]string, len(lookups))
	for _, l := range lookups {
		if l.Found {
			out[l.Key] = l.Value
		}
	}
	return out
}

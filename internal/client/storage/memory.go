package storage

import (
	"context"
	"sync"
)

// MemoryStorage keeps entries in a map. It does not survive a restart.
type MemoryStorage struct {
	mu     sync.RWMutex
	items  map[string]string
	closed bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (m *MemoryStorage) MultiGet(ctx context.Context, keys []string) ([]Lookup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	out := make([]Lookup, len(keys))
	for i, k := range keys {
		v, ok := m.items[k]
		out[i] = Lookup{Key: k, Value: v, Found: ok}
	}
	return out, nil
}

func (m *MemoryStorage) MultiSet(ctx context.Context, pairs []Pair) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	for _, p := range pairs {
		m.items[p.Key] = p.Value
	}
	return nil
}

func (m *MemoryStorage) MultiRemove(ctx context.Context, keys []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *MemoryStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	res, err := m.MultiGet(ctx, []string{key})
	if err != nil {
		return "", false, err
	}
	return res[0].Value, res[0].Found, nil
}

func (m *MemoryStorage) SetItem(ctx context.Context, key, value string) error {
	return m.MultiSet(ctx, []Pair{{Key: key, Value: value}})
}

func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Package store persists the fund's state through a small key-value
// contract. Collections are stored whole, as JSON, under fixed keys; the
// domain layer rewrites a key on every change and recomputes derived values
// instead of storing them.
package store

import (
	"context"
	"sync"
)

// KV is the persistence contract the domain layer depends on. A value is an
// opaque string; missing keys are reported through the bool, not an error.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStore is an in-memory KV for tests and zero-config runs.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

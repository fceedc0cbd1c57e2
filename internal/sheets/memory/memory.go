// Package memory is an in-memory ledger export target for tests and
// local runs without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"sunduq/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items map[int64]core.Transaction
	order []int64
}

func New() *Store {
	return &Store{items: make(map[int64]core.Transaction)}
}

// Append stores the transaction keyed by id and returns a synthetic row
// reference. A repeated id replaces the stored entry in place.
func (s *Store) Append(_ context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[t.ID]; !ok {
		s.order = append(s.order, t.ID)
	}
	s.items[t.ID] = t
	for i, id := range s.order {
		if id == t.ID {
			return fmt.Sprintf("mem:%d", i+1), nil
		}
	}
	return "", fmt.Errorf("lost row for id %d", t.ID)
}

// Remove drops the entry for id. Unknown ids are ignored.
func (s *Store) Remove(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return nil
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Items returns the exported transactions in insertion order.
func (s *Store) Items() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

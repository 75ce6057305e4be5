// Package memstore keeps collections in process memory. It backs the
// "memory" storage mode and most of the test suite.
package memstore

import (
	"context"
	"encoding/json"
	"sync"
)

type Store struct {
	mu   sync.RWMutex
	data map[string][]json.RawMessage
}

func New() *Store {
	return &Store{
		data: make(map[string][]json.RawMessage),
	}
}

func (s *Store) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.data[collection]
	out := make([]json.RawMessage, len(records))
	copy(out, records)
	return out, nil
}

func (s *Store) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]json.RawMessage, len(records))
	copy(stored, records)
	s.data[collection] = stored
	return nil
}

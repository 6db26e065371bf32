package snapshot

import (
	"context"
	"sync"

	"lemongrove/internal/domain"
)

type memoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemory returns a process-local Store.
func NewMemory() Store {
	return &memoryStore{records: make(map[string][]byte)}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.records[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(payload), nil
}

func (s *memoryStore) Put(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	s.records[key] = clone(payload)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) PutMany(_ context.Context, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.records[e.Key] = clone(e.Payload)
	}
	return nil
}

func (s *memoryStore) Ping(context.Context) error {
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

package history

import (
	"context"
	"sync"
)

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	recs []Record
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Append(_ context.Context, rec Record) error {
	s.mu.Lock()
	s.recs = append(s.recs, rec)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Query(_ context.Context, q Query) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Record
	for _, r := range s.recs {
		if q.Match(r) {
			out = append(out, r)
		}
	}
	return finish(q, out), nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.recs = nil
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }

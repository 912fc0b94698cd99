package briefingstore

import (
	"context"
	"sync"
	"time"

	"github.com/mtnwx/avalanche-briefing/internal/domain/briefing"
)

type entry struct {
	payload   briefing.SummaryRecord
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the summary cache for
// tests and single-instance deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry)}
}

// Get implements briefing.Store.
func (s *MemoryStore) Get(_ context.Context, key string) (briefing.SummaryRecord, bool, error) {
	if key == "" {
		return briefing.SummaryRecord{}, false, nil
	}
	s.mu.RLock()
	record, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return briefing.SummaryRecord{}, false, nil
	}
	if !record.expiresAt.IsZero() && time.Now().After(record.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return briefing.SummaryRecord{}, false, nil
	}
	return record.payload, true, nil
}

// Save implements briefing.Store.
func (s *MemoryStore) Save(_ context.Context, record briefing.SummaryRecord, ttl time.Duration) error {
	if record.Key == "" {
		return nil
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[record.Key] = entry{payload: record, expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

var _ briefing.Store = (*MemoryStore)(nil)

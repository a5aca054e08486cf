package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/ratewindow/internal/ratelimit"
)

// MemoryStore is an in-process implementation of ratelimit.Store, suitable
// for tests and single-instance deployments. Expired entries are dropped
// lazily on read.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
}

type memoryItem struct {
	payload   []byte
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[key]
	if !ok {
		return nil, nil
	}

	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		delete(s.items, key)

		return nil, nil
	}

	payload := make([]byte, len(item.payload))
	copy(payload, item.payload)

	return payload, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := memoryItem{payload: make([]byte, len(payload))}
	copy(item.payload, payload)

	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	}

	s.items[key] = item

	return nil
}

// Compile-time check.
var _ ratelimit.Store = (*MemoryStore)(nil)

package revocation

import (
	"context"
	"sort"
	"sync"
	"time"
)

// memoryStore keeps revoked IDs in a map guarded by a RWMutex. Expired
// entries are filtered on read and physically removed by Cleanup, so reads
// never need the write lock.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	maxSize int
	closed  bool
}

// NewMemoryStore returns an in-memory Store capped at maxSize entries.
func NewMemoryStore(maxSize int) Store {
	if maxSize <= 0 {
		maxSize = DefaultConfig().MaxSize
	}
	return &memoryStore{
		entries: make(map[string]time.Time),
		maxSize: maxSize,
	}
}

func (m *memoryStore) Add(_ context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if len(m.entries) >= m.maxSize {
		m.sweepLocked(time.Now())
		if len(m.entries) >= m.maxSize {
			m.evictOldestLocked(m.maxSize / 10)
		}
	}

	m.entries[tokenID] = expiresAt
	return nil
}

func (m *memoryStore) Contains(_ context.Context, tokenID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return false, ErrStoreClosed
	}

	expiresAt, ok := m.entries[tokenID]
	if !ok || time.Now().After(expiresAt) {
		return false, nil
	}
	return true, nil
}

func (m *memoryStore) Remove(_ context.Context, tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.entries, tokenID)
	return nil
}

func (m *memoryStore) Cleanup(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrStoreClosed
	}

	return m.sweepLocked(time.Now()), nil
}

func (m *memoryStore) Size(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrStoreClosed
	}

	return len(m.entries), nil
}

func (m *memoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.entries = nil
	return nil
}

func (m *memoryStore) sweepLocked(now time.Time) int {
	removed := 0
	for id, expiresAt := range m.entries {
		if now.After(expiresAt) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// evictOldestLocked drops the count entries closest to expiry. They are the
// least valuable to keep: their tokens die soonest on their own.
func (m *memoryStore) evictOldestLocked(count int) {
	if count <= 0 {
		count = 1
	}

	type entry struct {
		id        string
		expiresAt time.Time
	}
	all := make([]entry, 0, len(m.entries))
	for id, expiresAt := range m.entries {
		all = append(all, entry{id, expiresAt})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].expiresAt.Before(all[j].expiresAt) })

	for i := 0; i < len(all) && i < count; i++ {
		delete(m.entries, all[i].id)
	}
}

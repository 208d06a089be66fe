package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process cache with per-entry TTL and an optional size cap.
// When full, expired entries are dropped first, then the entries closest to expiry.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	maxEntries int
	now        func() time.Time
}

// NewMemory creates an in-memory cache. maxEntries <= 0 means unbounded.
func NewMemory(maxEntries int) *Memory {
	return &Memory{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns a copy of the value when present and not expired
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return nil, false
	}
	return append([]byte(nil), entry.data...), true
}

// Set stores value for ttl. A non-positive ttl is ignored.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists {
		m.evictIfNeeded()
	}
	m.entries[key] = memoryEntry{
		data:      append([]byte(nil), value...),
		expiresAt: m.now().Add(ttl),
	}
}

// Len returns the number of stored entries, including expired ones not yet evicted
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// evictIfNeeded makes room for one more entry. Caller holds mu.
func (m *Memory) evictIfNeeded() {
	if m.maxEntries <= 0 || len(m.entries) < m.maxEntries {
		return
	}

	// Phase 1: remove expired
	now := m.now()
	for key, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, key)
		}
	}

	// Phase 2: remove the earliest-expiring entries until under the limit
	for len(m.entries) >= m.maxEntries {
		var oldestKey string
		var oldestAt time.Time
		first := true
		for key, entry := range m.entries {
			if first || entry.expiresAt.Before(oldestAt) || (entry.expiresAt.Equal(oldestAt) && key < oldestKey) {
				oldestKey, oldestAt, first = key, entry.expiresAt, false
			}
		}
		delete(m.entries, oldestKey)
	}
}

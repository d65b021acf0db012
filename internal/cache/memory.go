package cache

import (
	"fmt"
	"path"
	"sync"
	"time"
)

// entry is a cached value and the instant it stops being served.
// A zero expiresAt never expires.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Memory is a concurrency-safe in-memory cache with per-entry expiry.
//
// Expired entries are not removed on read; they stay in the map until they
// are overwritten by Set or dropped by Clear / ClearPattern.
type Memory[V any] struct {
	mu sync.RWMutex

	// key: cache key, value: entry
	data map[string]entry[V]

	defaultTTL time.Duration // used when Set is called with ttl <= 0 (0 = no expiry)
	now        func() time.Time
}

// NewMemory creates an empty cache.
func NewMemory[V any](defaultTTL time.Duration) *Memory[V] {
	return NewMemoryWithClock[V](defaultTTL, time.Now)
}

// NewMemoryWithClock creates an empty cache that reads time from now.
func NewMemoryWithClock[V any](defaultTTL time.Duration, now func() time.Time) *Memory[V] {
	if now == nil {
		now = time.Now
	}
	return &Memory[V]{
		data:       make(map[string]entry[V]),
		defaultTTL: defaultTTL,
		now:        now,
	}
}

// Get returns the value stored under key while the current time is strictly
// before its expiry instant.
func (m *Memory[V]) Get(key string) (V, bool) {
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry wholesale.
func (m *Memory[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	e := entry[V]{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.data[key] = e
	m.mu.Unlock()
}

// Clear drops every entry.
func (m *Memory[V]) Clear() {
	m.mu.Lock()
	m.data = make(map[string]entry[V])
	m.mu.Unlock()
}

// ClearPattern drops the entries whose key matches the glob pattern
// (path.Match syntax, "*" matches everything) and returns how many were removed.
func (m *Memory[V]) ClearPattern(pattern string) (int, error) {
	if pattern == "" || pattern == "*" {
		m.mu.Lock()
		n := len(m.data)
		m.data = make(map[string]entry[V])
		m.mu.Unlock()
		return n, nil
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return 0, fmt.Errorf("invalid cache pattern %q: %w", pattern, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key := range m.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.data, key)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Healthy reports whether the cache can serve reads and writes.
func (m *Memory[V]) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data != nil
}

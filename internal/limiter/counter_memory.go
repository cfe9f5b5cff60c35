package limiter

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxKeys bounds a MemoryCounter created by NewMemoryCounter(0).
const DefaultMaxKeys = 100_000

type counterEntry struct {
	value     int64
	expiresAt time.Time
}

// MemoryCounter is an in-process [Counter]. It holds at most maxKeys live
// keys; when full it first drops expired keys and then the key closest to
// expiry.
type MemoryCounter struct {
	mu      sync.Mutex
	entries map[string]counterEntry
	maxKeys int

	now func() time.Time
}

// NewMemoryCounter returns an empty counter. maxKeys <= 0 means
// [DefaultMaxKeys].
func NewMemoryCounter(maxKeys int) *MemoryCounter {
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}

	return &MemoryCounter{
		entries: make(map[string]counterEntry),
		maxKeys: maxKeys,
		now:     time.Now,
	}
}

// Incr implements [Counter].
func (m *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	entry, ok := m.entries[key]
	if !ok || !now.Before(entry.expiresAt) {
		if !ok && len(m.entries) >= m.maxKeys {
			m.evictLocked(now)
		}
		entry = counterEntry{expiresAt: now.Add(window)}
	}

	entry.value++
	m.entries[key] = entry

	return entry.value, nil
}

// Get implements [Counter].
func (m *MemoryCounter) Get(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok || !m.now().Before(entry.expiresAt) {
		return 0, nil
	}

	return entry.value, nil
}

// Reset implements [Counter].
func (m *MemoryCounter) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()

	return nil
}

// Close implements [Counter].
func (m *MemoryCounter) Close() error {
	return nil
}

// Sweep implements [Sweeper].
func (m *MemoryCounter) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sweepLocked(m.now())
}

// Len returns the number of stored keys, expired ones included.
func (m *MemoryCounter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

func (m *MemoryCounter) sweepLocked(now time.Time) int {
	removed := 0
	for key, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, key)
			removed++
		}
	}

	return removed
}

func (m *MemoryCounter) evictLocked(now time.Time) {
	if m.sweepLocked(now) > 0 {
		return
	}

	var (
		oldestKey string
		oldestAt  time.Time
	)
	for key, entry := range m.entries {
		if oldestKey == "" || entry.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt = key, entry.expiresAt
		}
	}
	delete(m.entries, oldestKey)
}

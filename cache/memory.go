package cache

import (
	"container/list"
	"sync"
	"time"
)

const (
	defaultMaxEntries = 1000
	defaultTTL        = 30 * time.Minute
)

// Memory is an in-memory Cache with TTL expiration and LRU eviction.
// It provides thread-safe access to cached payloads, evicting entries
// based on both time-to-live and least-recently-used policies.
type Memory struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]*list.Element
	order      *list.List // front = most recently used
	now        func() time.Time
}

// memoryEntry represents a single cached payload.
type memoryEntry struct {
	key     string
	value   []byte
	expires time.Time
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithMaxEntries sets the maximum entry count before LRU eviction kicks in.
// Non-positive values leave the default of 1000 in place.
func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) {
		if n > 0 {
			m.maxEntries = n
		}
	}
}

// WithTTL sets the per-entry time-to-live, measured from insertion.
// Non-positive values leave the default of 30 minutes in place.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(m *Memory) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// NewMemory creates a Memory cache with the given options.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		ttl:        defaultTTL,
		maxEntries: defaultMaxEntries,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Get retrieves the payload for a CID. An expired entry is removed and
// reported absent. A hit promotes the entry to most recently used.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.entries[key]
	if !ok {
		return nil, false
	}

	entry := elem.Value.(*memoryEntry) //nolint:errcheck // type is guaranteed by Set
	if !m.now().Before(entry.expires) {
		m.removeLocked(elem, key)
		return nil, false
	}

	m.order.MoveToFront(elem)
	return entry.value, true
}

// Set stores a payload under a CID. If an entry already exists, it is
// updated, its lifetime restarts, and it is promoted to the front. If the
// cache is at capacity, the least recently used entry is evicted first.
func (m *Memory) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.entries[key]; ok {
		entry := elem.Value.(*memoryEntry) //nolint:errcheck // type is guaranteed
		entry.value = value
		entry.expires = m.now().Add(m.ttl)
		m.order.MoveToFront(elem)
		return
	}

	for m.order.Len() >= m.maxEntries {
		oldest := m.order.Back()
		if oldest == nil {
			break
		}
		oldEntry := oldest.Value.(*memoryEntry) //nolint:errcheck // type is guaranteed
		m.removeLocked(oldest, oldEntry.key)
	}

	entry := &memoryEntry{
		key:     key,
		value:   value,
		expires: m.now().Add(m.ttl),
	}
	m.entries[key] = m.order.PushFront(entry)
}

// Len returns the number of entries currently held, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// removeLocked removes an element from both the list and map.
// Caller must hold m.mu.
func (m *Memory) removeLocked(elem *list.Element, key string) {
	m.order.Remove(elem)
	delete(m.entries, key)
}

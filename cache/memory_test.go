package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemory(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		m := NewMemory()
		require.NotNil(t, m)
		assert.Equal(t, defaultTTL, m.ttl)
		assert.Equal(t, defaultMaxEntries, m.maxEntries)
		assert.NotNil(t, m.entries)
		assert.NotNil(t, m.order)
	})

	t.Run("custom limits", func(t *testing.T) {
		t.Parallel()
		m := NewMemory(WithMaxEntries(5), WithTTL(time.Second))
		assert.Equal(t, 5, m.maxEntries)
		assert.Equal(t, time.Second, m.ttl)
	})

	t.Run("non-positive options keep defaults", func(t *testing.T) {
		t.Parallel()
		m := NewMemory(WithMaxEntries(0), WithTTL(-time.Second))
		assert.Equal(t, defaultMaxEntries, m.maxEntries)
		assert.Equal(t, defaultTTL, m.ttl)
	})
}

func TestMemoryGetSet(t *testing.T) {
	// No t.Parallel() - subtests share cache
	m := NewMemory()

	t.Run("get returns false for missing key", func(t *testing.T) {
		value, ok := m.Get("unknown-cid")
		assert.False(t, ok)
		assert.Nil(t, value)
	})

	t.Run("set and get returns value", func(t *testing.T) {
		m.Set("bafyone", []byte("payload"))

		value, ok := m.Get("bafyone")
		assert.True(t, ok)
		assert.Equal(t, []byte("payload"), value)
	})

	t.Run("set overwrites existing value", func(t *testing.T) {
		m.Set("bafytwo", []byte("old"))
		m.Set("bafytwo", []byte("new"))

		value, ok := m.Get("bafytwo")
		assert.True(t, ok)
		assert.Equal(t, []byte("new"), value)
	})

	t.Run("nil value is stored and reported present", func(t *testing.T) {
		m.Set("bafyempty", nil)

		value, ok := m.Get("bafyempty")
		assert.True(t, ok)
		assert.Nil(t, value)
	})
}

func TestMemoryExpiration(t *testing.T) {
	t.Parallel()

	m := NewMemory(WithTTL(time.Minute))
	current := time.Unix(1000, 0)
	m.now = func() time.Time { return current }

	m.Set("bafycid", []byte("payload"))

	_, ok := m.Get("bafycid")
	require.True(t, ok)

	t.Run("entry absent at exactly TTL", func(t *testing.T) {
		current = current.Add(time.Minute)
		_, ok := m.Get("bafycid")
		assert.False(t, ok)
	})

	t.Run("expired entry is removed", func(t *testing.T) {
		assert.Equal(t, 0, m.Len())
	})

	t.Run("set restarts the lifetime", func(t *testing.T) {
		m.Set("bafycid", []byte("fresh"))
		current = current.Add(30 * time.Second)

		value, ok := m.Get("bafycid")
		assert.True(t, ok)
		assert.Equal(t, []byte("fresh"), value)
	})
}

func TestMemoryEviction(t *testing.T) {
	t.Parallel()

	t.Run("exceeding capacity evicts least recently used", func(t *testing.T) {
		t.Parallel()
		m := NewMemory(WithMaxEntries(3))
		m.Set("a", []byte("1"))
		m.Set("b", []byte("2"))
		m.Set("c", []byte("3"))

		m.Set("d", []byte("4"))

		_, ok := m.Get("a")
		assert.False(t, ok, "oldest entry should be evicted")
		for _, key := range []string{"b", "c", "d"} {
			_, ok := m.Get(key)
			assert.True(t, ok, "entry %q should survive", key)
		}
		assert.Equal(t, 3, m.Len())
	})

	t.Run("get promotes recency", func(t *testing.T) {
		t.Parallel()
		m := NewMemory(WithMaxEntries(3))
		m.Set("a", []byte("1"))
		m.Set("b", []byte("2"))
		m.Set("c", []byte("3"))

		// Touch "a" so "b" becomes the eviction candidate.
		_, ok := m.Get("a")
		require.True(t, ok)

		m.Set("d", []byte("4"))

		_, ok = m.Get("b")
		assert.False(t, ok, "least recently used entry should be evicted")
		_, ok = m.Get("a")
		assert.True(t, ok, "recently read entry should survive")
	})

	t.Run("many inserts never exceed capacity", func(t *testing.T) {
		t.Parallel()
		m := NewMemory(WithMaxEntries(10))
		for i := 0; i < 100; i++ {
			m.Set(fmt.Sprintf("cid-%d", i), []byte{byte(i)})
		}
		assert.Equal(t, 10, m.Len())
	})
}

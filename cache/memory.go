package cache

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

const (
	// DefaultMaxEntries is the size that triggers eviction.
	DefaultMaxEntries = 1000

	// DefaultTrimTo is the size oldest-first eviction shrinks the cache to.
	DefaultTrimTo = 800
)

// InMemoryCache is a thread-safe in-memory cache with per-entry TTL and a size bound.
//
// Expired entries are removed lazily on Get. After every Set that leaves the
// cache above its limit, expired entries are purged first; if that is not
// enough, the oldest entries by insertion time are dropped until the cache is
// at the trim size. Reads never refresh an entry's position.
type InMemoryCache struct {
	cache      map[string]Entry
	mu         sync.RWMutex
	maxEntries int
	trimTo     int
	now        func() time.Time
}

// MemoryOption configures an InMemoryCache.
type MemoryOption func(*InMemoryCache)

// WithMaxEntries sets the eviction threshold and the size eviction trims to.
func WithMaxEntries(maxEntries, trimTo int) MemoryOption {
	return func(c *InMemoryCache) {
		if maxEntries > 0 {
			c.maxEntries = maxEntries
		}
		if trimTo > 0 && trimTo <= c.maxEntries {
			c.trimTo = trimTo
		} else {
			c.trimTo = c.maxEntries
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *InMemoryCache) {
		c.now = now
	}
}

// NewInMemoryCache creates an empty cache bounded at 1000 entries, trimmed to 800.
func NewInMemoryCache(opts ...MemoryOption) *InMemoryCache {
	c := &InMemoryCache{
		cache:      make(map[string]Entry),
		maxEntries: DefaultMaxEntries,
		trimTo:     DefaultTrimTo,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves a value from the cache.
// An expired entry is deleted and reported as a miss.
func (c *InMemoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if entry.Expired(c.now()) {
		c.mu.Lock()
		// Re-check: a concurrent Set may have replaced it.
		if cur, ok := c.cache[key]; ok && cur.Expired(c.now()) {
			delete(c.cache, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return entry.Value, true
}

// Set stores a value in the cache and runs eviction.
func (c *InMemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	now := c.now()
	entry := Entry{
		Key:       key,
		Value:     value,
		Timestamp: now,
	}
	if ttl > 0 {
		entry.ExpiresAt = now.Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[key] = entry
	c.maintain(now)
	return nil
}

// maintain enforces the size bound (must be called with lock held).
func (c *InMemoryCache) maintain(now time.Time) {
	if len(c.cache) <= c.maxEntries {
		return
	}

	for key, entry := range c.cache {
		if entry.Expired(now) {
			delete(c.cache, key)
		}
	}
	if len(c.cache) <= c.maxEntries {
		return
	}

	entries := make([]Entry, 0, len(c.cache))
	for _, entry := range c.cache {
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	for _, entry := range entries[:len(entries)-c.trimTo] {
		delete(c.cache, entry.Key)
	}
}

// Len returns the number of entries in the cache (including expired ones).
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Clear removes all entries from the cache.
func (c *InMemoryCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]Entry)
	return nil
}

// Entries returns all non-expired entries, oldest first.
// This is used for cache export.
func (c *InMemoryCache) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	result := make([]Entry, 0, len(c.cache))
	for _, entry := range c.cache {
		if entry.Expired(now) {
			continue
		}
		result = append(result, entry)
	}
	slices.SortFunc(result, func(a, b Entry) int {
		if n := a.Timestamp.Compare(b.Timestamp); n != 0 {
			return n
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return result
}

// Restore inserts entries with their original timestamps and expiry.
// Entries that have already expired are skipped. It returns how many were stored.
func (c *InMemoryCache) Restore(entries []Entry) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for _, entry := range entries {
		if entry.Key == "" || entry.Expired(now) {
			continue
		}
		if entry.Timestamp.IsZero() {
			entry.Timestamp = now
		}
		c.cache[entry.Key] = entry
		n++
	}
	c.maintain(now)
	return n
}

// Verify InMemoryCache implements Cache
var _ Cache = (*InMemoryCache)(nil)

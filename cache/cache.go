// Package cache provides lookup result caching implementations.
package cache

import "time"

// Cache stores encoded lookup results with a per-entry time to live.
type Cache interface {
	// Get retrieves a cached value. Returns nil and false if not found or expired.
	Get(key string) ([]byte, bool)

	// Set stores a value that expires after ttl. A ttl of zero never expires.
	Set(key string, value []byte, ttl time.Duration) error

	// Clear removes every entry.
	Clear() error

	// Len returns the number of stored entries.
	Len() int
}

// Entry is a single cached value with its bookkeeping timestamps.
type Entry struct {
	Key       string    `json:"key"`
	Value     []byte    `json:"value"`
	Timestamp time.Time `json:"timestamp"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Expired reports whether e has passed its expiry at now.
func (e Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Package cache provides bounded-lifetime caching for fetched payloads.
//
// This package is designed as an injectable dependency of the fetcher: the
// default is a process-lifetime in-memory cache, and callers may share one
// instance across fetchers or substitute their own implementation.
//
// Keys are CIDs. Because content is immutable, a cached payload never needs
// invalidation beyond its time-to-live.
package cache

// Cache stores fetched payloads by CID.
//
// A nil payload is a valid value: storing one records that a fetch
// completed empty-handed, and Get reports it as present.
//
// Implementations must be safe for concurrent use and handle their own
// size limits and eviction policies.
type Cache interface {
	// Get retrieves the payload for a CID.
	// Returns nil, false if the CID is not cached or its entry expired.
	// A lookup counts as a use for recency-based eviction policies.
	Get(key string) ([]byte, bool)

	// Set stores a payload under a CID, replacing any existing entry and
	// restarting its lifetime.
	Set(key string, value []byte)
}

package cidfetch

import (
	"log/slog"

	"github.com/meigma/cidfetch/cache"
)

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithCache sets the cache consulted before the gateway. Pass a shared
// instance to reuse cached payloads across fetchers.
func WithCache(c cache.Cache) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.cache = c
		}
	}
}

// WithLogger sets a logger for the fetcher's diagnostic output (cache
// hits and misses, retries, terminal failures).
// If nil, a discard logger is used (default behavior). Diagnostics are
// incidental: nothing in the fetch contract is communicated only by log.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithRetryPolicy overrides the default retry configuration.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(f *Fetcher) {
		f.retry = policy
	}
}

// WithCoalescing de-duplicates concurrent fetches for the same uncached
// CID into a single gateway call shared by all waiters.
//
// This changes observable behavior: without it, concurrent fetches for one
// CID each hit the gateway (the historical behavior of this flow). Enable
// it when duplicate in-flight requests matter more than call-for-call
// compatibility.
func WithCoalescing() Option {
	return func(f *Fetcher) {
		f.coalesce = true
	}
}

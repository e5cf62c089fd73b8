// Package cidfetch retrieves immutable content-addressed data from a
// distributed content network, combining a bounded-lifetime cache,
// classification-aware retry, and per-CID fetch status tracking.
//
// This package provides a high-level API through [Fetcher]. The network
// transport lives behind the narrow [gateway.Gateway] interface; the
// [gateway] subpackage ships an HTTP path-gateway implementation.
//
// # Quick Start
//
// Fetch content through a public HTTP gateway:
//
//	gw, err := gateway.NewClient("https://ipfs.io")
//	if err != nil {
//	    return err
//	}
//	f := cidfetch.New(gw)
//	payload := f.Fetch(ctx, "bafybeigdyrzt5s...")
//	if payload == nil {
//	    log.Printf("fetch failed: %s", f.FetchError("bafybeigdyrzt5s..."))
//	}
//
// Fetch and FetchAll never return an error: a failed fetch yields a nil
// payload, and the failure detail is available out-of-band through
// [Fetcher.FetchError], [Fetcher.IsLoading], and [Fetcher.LastUpdated].
//
// # Caching
//
// Each Fetcher defaults to its own in-memory cache with LRU eviction and a
// 30 minute TTL. Share one cache across fetchers for process-wide reuse:
//
//	shared := cache.NewMemory(cache.WithMaxEntries(5000))
//	f := cidfetch.New(gw, cidfetch.WithCache(shared))
//
// # Retry
//
// Transient gateway failures are retried with linearly increasing delays;
// authentication and authorization failures are terminal and never retried.
// Tune the schedule with [WithRetryPolicy].
package cidfetch

package cidfetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/meigma/cidfetch/cache"
	"github.com/meigma/cidfetch/gateway"
)

// Fetcher retrieves content-addressed payloads through a gateway, caching
// results and tracking per-CID fetch status.
//
// Status is scoped to the Fetcher: two fetchers sharing one cache still
// keep independent loading/error state.
type Fetcher struct {
	gateway  gateway.Gateway
	cache    cache.Cache
	status   *StatusTracker
	retry    RetryPolicy
	logger   *slog.Logger
	coalesce bool
	group    singleflight.Group
}

// log returns the logger, falling back to a discard logger if nil.
func (f *Fetcher) log() *slog.Logger {
	if f.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return f.logger
}

// New creates a Fetcher using the given gateway.
//
// Unless overridden with WithCache, each Fetcher gets its own in-memory
// cache with default bounds (1000 entries, 30 minute TTL).
func New(gw gateway.Gateway, opts ...Option) *Fetcher {
	f := &Fetcher{
		gateway: gw,
		status:  NewStatusTracker(),
		retry:   DefaultRetryPolicy,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.cache == nil {
		f.cache = cache.NewMemory()
	}
	return f
}

// Fetch returns the payload for cid, or nil if it could not be retrieved.
//
// Fetch never returns an error: authorization rejections, exhausted
// retries, and internal failures all surface as a nil payload, with the
// failure message available via FetchError. A nil result is therefore
// ambiguous between "not found", "access denied", and "network exhausted"
// until FetchError is consulted.
//
// An empty cid yields nil without touching any status.
func (f *Fetcher) Fetch(ctx context.Context, cid string) (payload []byte) {
	if cid == "" {
		return nil
	}

	// The gateway contract forbids panics, but a misbehaving collaborator
	// must not take the caller down: record the failure and degrade to nil.
	defer func() {
		if r := recover(); r != nil {
			f.status.MarkError(cid, fmt.Sprint(r))
			payload = nil
		}
	}()

	f.status.MarkLoading(cid)

	if cached, ok := f.cache.Get(cid); ok {
		// A hit returns before any success mark, so IsLoading stays true
		// for this CID until a miss-path fetch completes. Kept to match
		// the long-observed behavior of this flow; see DESIGN.md.
		f.log().Debug("cache hit", "cid", cid)
		return cached
	}
	f.log().Debug("cache miss", "cid", cid)

	payload = f.fetchRemote(ctx, cid)

	// Failed fetches are cached too: the nil entry suppresses repeat
	// lookups until it expires or is evicted.
	f.cache.Set(cid, payload)
	f.status.MarkSuccess(cid)
	return payload
}

// FetchAll fetches every CID concurrently and returns the payloads in
// input order. Individual failures surface as nil slots, never as a
// failed aggregate. No concurrency cap is applied.
func (f *Fetcher) FetchAll(ctx context.Context, cids []string) [][]byte {
	results := make([][]byte, len(cids))
	var g errgroup.Group
	for i, cid := range cids {
		i, cid := i, cid
		g.Go(func() error {
			results[i] = f.Fetch(ctx, cid)
			return nil
		})
	}
	_ = g.Wait() // fetches never report errors
	return results
}

// IsLoading reports whether a fetch for cid is in flight.
// CIDs never fetched report false.
func (f *Fetcher) IsLoading(cid string) bool {
	return f.status.IsLoading(cid)
}

// FetchError returns the most recent failure message recorded for cid, or
// "" if the CID is unknown or its last fetch did not fail.
func (f *Fetcher) FetchError(cid string) string {
	return f.status.Err(cid)
}

// LastUpdated returns the time of the most recent status change for cid.
// ok is false for CIDs never fetched.
func (f *Fetcher) LastUpdated(cid string) (updated time.Time, ok bool) {
	return f.status.LastUpdated(cid)
}

// fetchRemote runs the retrying gateway fetch and records the terminal
// failure, if any, in the status tracker. With coalescing enabled,
// concurrent callers for the same CID share one gateway fetch.
func (f *Fetcher) fetchRemote(ctx context.Context, cid string) []byte {
	if !f.coalesce {
		return f.fetchOnce(ctx, cid)
	}
	result, _, _ := f.group.Do(cid, func() (any, error) {
		return f.fetchOnce(ctx, cid), nil
	})
	payload, _ := result.([]byte)
	return payload
}

func (f *Fetcher) fetchOnce(ctx context.Context, cid string) []byte {
	payload, err := f.fetchWithRetry(ctx, cid)
	if err != nil {
		f.log().Warn("fetch failed", "cid", cid, "error", err)
		f.status.MarkError(cid, err.Error())
		return nil
	}
	f.log().Debug("fetched", "cid", cid, "size", len(payload))
	return payload
}

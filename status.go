package cidfetch

import (
	"sync"
	"time"
)

// Status is a point-in-time snapshot of a CID's fetch state.
type Status struct {
	// Loading reports whether a fetch for the CID is in flight.
	Loading bool

	// Err holds the message of the most recent failure, or "" if the last
	// status-affecting event was not a failure. MarkLoading clears it at
	// the start of each fetch.
	Err string

	// LastUpdated is the time of the most recent status-affecting event.
	LastUpdated time.Time
}

// StatusTracker records per-CID fetch status. Entries are created on the
// first status-affecting event for a CID and never removed; an absent
// entry means the CID was never fetched.
//
// StatusTracker is safe for concurrent use. Snapshots are returned by
// value, so updating one CID never disturbs what readers observed for
// another.
type StatusTracker struct {
	mu      sync.Mutex
	entries map[string]Status
	now     func() time.Time
}

// NewStatusTracker creates an empty tracker.
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{
		entries: make(map[string]Status),
		now:     time.Now,
	}
}

// MarkLoading records the start of a fetch: loading is set, any previous
// error is cleared, and the timestamp refreshes.
func (t *StatusTracker) MarkLoading(cid string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[cid] = Status{Loading: true, LastUpdated: t.now()}
}

// MarkSuccess records fetch completion: loading clears and the timestamp
// refreshes. The error field is left as last set.
func (t *StatusTracker) MarkSuccess(cid string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry := t.entries[cid]
	entry.Loading = false
	entry.LastUpdated = t.now()
	t.entries[cid] = entry
}

// MarkError records a failed fetch with its message.
func (t *StatusTracker) MarkError(cid, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry := t.entries[cid]
	entry.Loading = false
	entry.Err = message
	entry.LastUpdated = t.now()
	t.entries[cid] = entry
}

// IsLoading reports whether a fetch for the CID is in flight.
// Unknown CIDs report false.
func (t *StatusTracker) IsLoading(cid string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.entries[cid].Loading
}

// Err returns the most recent failure message for the CID, or "" if the
// CID is unknown or its last fetch did not fail.
func (t *StatusTracker) Err(cid string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.entries[cid].Err
}

// LastUpdated returns the time of the CID's most recent status change.
// ok is false if the CID was never tracked.
func (t *StatusTracker) LastUpdated(cid string) (updated time.Time, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[cid]
	return entry.LastUpdated, ok
}

// Lookup returns the full status snapshot for a CID.
// ok is false if the CID was never tracked.
func (t *StatusTracker) Lookup(cid string) (status Status, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	status, ok = t.entries[cid]
	return status, ok
}

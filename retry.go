package cidfetch

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy controls how transient gateway failures are retried.
//
// The delay before retry n (1-based) is BaseDelay × n: linearly increasing,
// uncapped, unjittered. Auth failures are never retried regardless of the
// policy.
type RetryPolicy struct {
	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int

	// BaseDelay is the delay unit between attempts.
	BaseDelay time.Duration
}

// DefaultRetryPolicy retries twice, waiting 1s then 2s.
var DefaultRetryPolicy = RetryPolicy{
	MaxRetries: 2,
	BaseDelay:  time.Second,
}

// linearBackOff implements backoff.BackOff with a delay that grows by a
// fixed step each attempt.
type linearBackOff struct {
	base    time.Duration
	attempt int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return b.base * time.Duration(b.attempt)
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}

// fetchWithRetry calls the gateway for cid, retrying transient failures per
// the fetcher's policy. Auth failures abort immediately. The context stops
// backoff waits between attempts; a dispatched gateway call itself is never
// interrupted by this function.
func (f *Fetcher) fetchWithRetry(ctx context.Context, cid string) ([]byte, error) {
	operation := func() ([]byte, error) {
		payload, err := f.gateway.Get(ctx, cid)
		if err != nil {
			if isAuthError(err) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return payload, nil
	}

	maxRetries := f.retry.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	var policy backoff.BackOff = &linearBackOff{base: f.retry.BaseDelay}
	policy = backoff.WithMaxRetries(policy, uint64(maxRetries))
	policy = backoff.WithContext(policy, ctx)

	notify := func(err error, delay time.Duration) {
		f.log().Debug("retrying fetch", "cid", cid, "delay", delay, "error", err)
	}
	return backoff.RetryNotifyWithData(operation, policy, notify)
}

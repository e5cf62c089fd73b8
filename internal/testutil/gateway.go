// Package testutil provides test doubles shared across packages.
package testutil

import (
	"context"
	"sync"
)

// Gateway is a scripted gateway.Gateway for tests. The response function
// receives the CID and the 1-based call number for that CID, so tests can
// script fail-then-succeed sequences and assert exact call counts.
type Gateway struct {
	mu    sync.Mutex
	calls map[string]int
	fn    func(cid string, call int) ([]byte, error)
}

// NewGateway creates a Gateway answering with fn. A nil fn echoes
// "payload:"+cid for every call.
func NewGateway(fn func(cid string, call int) ([]byte, error)) *Gateway {
	return &Gateway{
		calls: make(map[string]int),
		fn:    fn,
	}
}

// Get implements gateway.Gateway.
func (g *Gateway) Get(_ context.Context, cid string) ([]byte, error) {
	g.mu.Lock()
	g.calls[cid]++
	call := g.calls[cid]
	g.mu.Unlock()

	if g.fn == nil {
		return []byte("payload:" + cid), nil
	}
	return g.fn(cid, call)
}

// Calls returns how many times cid was requested.
func (g *Gateway) Calls(cid string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[cid]
}

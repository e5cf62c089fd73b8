// Package gateway defines the network collaborator used to retrieve
// content-addressed payloads, along with an HTTP path-gateway
// implementation.
//
// The fetcher depends only on the [Gateway] interface; any transport that
// can resolve a CID to its payload can be plugged in.
package gateway

import "context"

// Gateway retrieves the payload for a content identifier.
//
// Implementations must be safe for concurrent use: the fetcher issues
// requests for different CIDs (and, without coalescing, for the same CID)
// concurrently.
type Gateway interface {
	// Get returns the payload addressed by cid.
	//
	// Failures should be returned as a [*Error] where the transport can
	// attribute them to an upstream status or error code; the fetcher uses
	// that detail to decide whether a failure is worth retrying.
	Get(ctx context.Context, cid string) ([]byte, error)
}

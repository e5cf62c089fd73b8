package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// CodeAuthenticationFailed is the error code carried by authentication and
// authorization failures. Fetch retry logic treats any error with this code
// as terminal.
const CodeAuthenticationFailed = "AUTHENTICATION_FAILED"

// ErrNotFound is returned when the gateway has no content for the CID.
var ErrNotFound = errors.New("gateway: not found")

// Error describes a failed gateway request.
//
// StatusCode is the upstream HTTP status when one was received; Code and
// Name further classify the failure for callers that do not want to match
// on status codes.
type Error struct {
	StatusCode int
	Code       string
	Name       string
	Message    string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("gateway: %s (status %d)", e.Message, e.StatusCode)
	}
	return "gateway: " + e.Message
}

// Is reports sentinel matches so callers can use errors.Is against
// ErrNotFound without inspecting status codes.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

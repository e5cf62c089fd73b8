package cidfetch

import (
	"errors"
	"net/http"
	"strings"

	"github.com/meigma/cidfetch/gateway"
)

// isAuthError classifies a gateway failure as an authentication or
// authorization rejection. Such failures are terminal: retrying cannot
// change an auth decision and only wastes calls against rate limits.
//
// A failure counts as auth when any of the following hold: the chain
// contains a *gateway.Error with status 403, name "AuthenticationError",
// or code gateway.CodeAuthenticationFailed; or the message contains "403"
// or "Authentication Failed" (covers collaborators that surface upstream
// failures as plain wrapped errors).
func isAuthError(err error) bool {
	if err == nil {
		return false
	}
	var gerr *gateway.Error
	if errors.As(err, &gerr) {
		if gerr.StatusCode == http.StatusForbidden {
			return true
		}
		if gerr.Name == "AuthenticationError" {
			return true
		}
		if gerr.Code == gateway.CodeAuthenticationFailed {
			return true
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "403") || strings.Contains(msg, "Authentication Failed")
}

package cidfetch

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meigma/cidfetch/gateway"
)

func TestLinearBackOff(t *testing.T) {
	t.Parallel()

	b := &linearBackOff{base: 100 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, b.NextBackOff())
	assert.Equal(t, 200*time.Millisecond, b.NextBackOff())
	assert.Equal(t, 300*time.Millisecond, b.NextBackOff())

	b.Reset()
	assert.Equal(t, 100*time.Millisecond, b.NextBackOff())
}

func TestIsAuthError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain transient", errors.New("connection refused"), false},
		{"status forbidden", &gateway.Error{StatusCode: http.StatusForbidden}, true},
		{"status server error", &gateway.Error{StatusCode: http.StatusBadGateway, Message: "bad gateway"}, false},
		{"name match", &gateway.Error{Name: "AuthenticationError"}, true},
		{"code match", &gateway.Error{Code: gateway.CodeAuthenticationFailed}, true},
		{"message 403", errors.New("unexpected status 403"), true},
		{"message auth failed", errors.New("Authentication Failed"), true},
		{"wrapped typed error", fmt.Errorf("outer: %w", &gateway.Error{StatusCode: http.StatusForbidden}), true},
		{"not found", gateway.ErrNotFound, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isAuthError(tt.err))
		})
	}
}

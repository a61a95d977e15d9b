package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrNotFound indicates the upstream has no resource for the request, for
// example a live feed for a game that has not started.
var ErrNotFound = errors.New("provider: not found")

// UpstreamError captures a non-2xx response from the upstream API.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: upstream status %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: upstream status %d", e.Provider, e.StatusCode)
}

// AsUpstreamError attempts to unwrap an error into an UpstreamError.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// IsNotFound reports whether the error is the not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTimeout reports whether the error represents a timed-out request.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

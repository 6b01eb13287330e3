package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors that the HTTP layer maps onto status codes. Everything the
// services return wraps one of these or is one of the typed upstream errors
// below; nothing else crosses the handler boundary.
var (
	// ErrConfig means a required credential or secret is absent.
	ErrConfig = errors.New("server misconfiguration")

	// ErrValidation means the request body is missing or malformed.
	ErrValidation = errors.New("invalid request")

	// ErrTimeout means the bounded wait for an upstream reply elapsed.
	ErrTimeout = errors.New("upstream request timed out")
)

// UpstreamNetworkError reports a transport-level failure reaching a third-party API.
type UpstreamNetworkError struct {
	Provider string
	Err      error
}

func (e *UpstreamNetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.Provider, e.Err)
}

func (e *UpstreamNetworkError) Unwrap() error { return e.Err }

// UpstreamStatusError reports a non-2xx reply from a third-party API. The
// status and body are carried for diagnosis and echoed in the 502 response.
type UpstreamStatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Provider, e.StatusCode, e.Body)
}

package httpclient

import (
	"net/http"
	"time"
)

// sharedTransport is reused across all pooled clients so connections to the
// LLM and payment APIs are kept alive between requests instead of paying a
// fresh TLS handshake per call.
var sharedTransport = &http.Transport{
	MaxIdleConns:        20,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     120 * time.Second,
	DisableKeepAlives:   false,
}

// NewPooledClient creates an http.Client that shares a connection pool with
// other pooled clients. A zero timeout leaves cancellation entirely to the
// request context.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: sharedTransport,
	}
}

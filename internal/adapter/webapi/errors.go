package webapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/kumarshrey19021990-arch/amioverreacting/internal/domain"
)

// writeError converts a service error into the JSON error contract. Config
// details never reach the caller; upstream status and body do, for diagnosis.
func (h *Handler) writeError(ctx echo.Context, err error) error {
	reqCtx := ctx.Request().Context()

	switch {
	case errors.Is(err, domain.ErrValidation):
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})

	case errors.Is(err, domain.ErrConfig):
		h.log.ErrorContext(reqCtx, "misconfiguration", "error", err)
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "Server misconfiguration"})

	case errors.Is(err, domain.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		h.log.WarnContext(reqCtx, "upstream timeout", "error", err)
		return ctx.JSON(http.StatusGatewayTimeout, map[string]string{"error": "Upstream request timed out"})
	}

	var statusErr *domain.UpstreamStatusError
	if errors.As(err, &statusErr) {
		h.log.ErrorContext(reqCtx, "upstream status error",
			"provider", statusErr.Provider,
			"status", statusErr.StatusCode,
			"body", statusErr.Body)
		return ctx.JSON(http.StatusBadGateway, map[string]any{
			"error":   "Upstream API request failed",
			"status":  statusErr.StatusCode,
			"details": statusErr.Body,
		})
	}

	var netErr *domain.UpstreamNetworkError
	if errors.As(err, &netErr) {
		h.log.ErrorContext(reqCtx, "upstream network error", "provider", netErr.Provider, "error", netErr.Err)
		return ctx.JSON(http.StatusBadGateway, map[string]string{
			"error":   "Network error calling upstream API",
			"details": redactNetworkError(netErr.Err),
		})
	}

	h.log.ErrorContext(reqCtx, "unhandled error", "error", err)
	return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "Server error"})
}

// redactNetworkError strips query strings from request URLs before the error
// text is echoed to the caller. Transport errors embed the full URL, and a
// query string can carry credentials.
func redactNetworkError(err error) string {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err.Error()
	}

	cleaned := urlErr.URL
	if parsed, parseErr := url.Parse(urlErr.URL); parseErr == nil && parsed.RawQuery != "" {
		parsed.RawQuery = ""
		cleaned = parsed.String()
	}
	return fmt.Sprintf("%s %q: %s", urlErr.Op, cleaned, urlErr.Err)
}

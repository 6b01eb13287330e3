package webapi

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/kumarshrey19021990-arch/amioverreacting/internal/infra/logger"
)

// Register wires middleware and routes onto the echo instance. The analyze
// endpoint is rate limited per client IP; everything else relies on the
// ambient HTTP timeouts.
func Register(e *echo.Echo, h *Handler, analyzeRateLimit float64, log *slog.Logger) {
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		RequestIDHandler: func(c echo.Context, id string) {
			c.SetRequest(c.Request().WithContext(logger.WithRequestID(c.Request().Context(), id)))
		},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.InfoContext(c.Request().Context(), "request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String())
			return nil
		},
	}))

	analyzeLimiter := middleware.RateLimiter(
		middleware.NewRateLimiterMemoryStore(rate.Limit(analyzeRateLimit)),
	)

	e.POST("/analyze", h.Analyze, analyzeLimiter)
	e.POST("/create-checkout-session", h.CreateCheckoutSession)
	e.POST("/verify-checkout-session", h.VerifyCheckoutSession)
	e.GET("/verify-checkout-session", h.VerifyCheckoutSession)
	e.POST("/verify-coupon", h.VerifyCoupon)
	e.POST("/razorpay/order", h.RazorpayOrder)
	e.GET("/healthz", h.Healthz)
}

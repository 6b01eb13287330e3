package webapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kumarshrey19021990-arch/amioverreacting/internal/domain"
	"github.com/kumarshrey19021990-arch/amioverreacting/internal/infra/config"
	"github.com/kumarshrey19021990-arch/amioverreacting/internal/usecase"
)

// RawOrderCreator backs the /razorpay/order passthrough endpoint.
type RawOrderCreator interface {
	CreateRawOrder(ctx context.Context, amountMinor int64, currency, receipt string) (json.RawMessage, error)
}

type Handler struct {
	analyzeUsecase  usecase.AnalyzeUsecase
	checkoutUsecase usecase.CheckoutUsecase
	couponGate      usecase.CouponGate
	rawOrders       RawOrderCreator
	baseURL         string
	log             *slog.Logger
}

func NewHandler(
	analyzeUsecase usecase.AnalyzeUsecase,
	checkoutUsecase usecase.CheckoutUsecase,
	couponGate usecase.CouponGate,
	rawOrders RawOrderCreator,
	baseURL string,
	log *slog.Logger,
) *Handler {
	return &Handler{
		analyzeUsecase:  analyzeUsecase,
		checkoutUsecase: checkoutUsecase,
		couponGate:      couponGate,
		rawOrders:       rawOrders,
		baseURL:         baseURL,
		log:             log,
	}
}

// Analyze a situation description
// (POST /analyze)
func (h *Handler) Analyze(ctx echo.Context) error {
	var body map[string]any
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Missing text in request body"})
	}

	// Non-string or empty text is rejected before any network call.
	text, ok := body["text"].(string)
	if !ok || strings.TrimSpace(text) == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Missing text in request body"})
	}

	result, err := h.analyzeUsecase.Execute(ctx.Request().Context(), usecase.AnalyzeInput{Text: text})
	if err != nil {
		return h.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// Create a provider checkout session for the caller's region
// (POST /create-checkout-session)
func (h *Handler) CreateCheckoutSession(ctx echo.Context) error {
	var body struct {
		Region string `json:"region"`
	}
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	session, err := h.checkoutUsecase.CreateOrder(ctx.Request().Context(), body.Region, h.origin(ctx))
	if err != nil {
		return h.writeError(ctx, err)
	}

	// Link-based providers hand back a redirect URL; order-based providers
	// hand back what the checkout widget needs.
	if session.ApprovalURL != "" {
		return ctx.JSON(http.StatusOK, map[string]string{"url": session.ApprovalURL})
	}
	return ctx.JSON(http.StatusOK, map[string]any{
		"order": map[string]any{
			"id":       session.OrderID,
			"amount":   session.AmountMinor,
			"currency": session.Currency,
		},
		"publicKey": session.PublicKey,
		"display":   session.Display,
	})
}

// Verify that a checkout session was paid
// (POST /verify-checkout-session for Razorpay, GET ?token=... for PayPal)
func (h *Handler) VerifyCheckoutSession(ctx echo.Context) error {
	provider := h.checkoutUsecase.ProviderName()

	switch ctx.Request().Method {
	case http.MethodPost:
		if provider != config.PaymentProviderRazorpay {
			return ctx.JSON(http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		}
		var body struct {
			OrderID   string `json:"razorpay_order_id"`
			PaymentID string `json:"razorpay_payment_id"`
			Signature string `json:"razorpay_signature"`
		}
		if err := ctx.Bind(&body); err != nil {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if body.OrderID == "" || body.PaymentID == "" || body.Signature == "" {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
		}
		outcome, err := h.checkoutUsecase.Verify(ctx.Request().Context(), domain.VerificationProof{
			OrderID:   body.OrderID,
			PaymentID: body.PaymentID,
			Signature: body.Signature,
		})
		if err != nil {
			return h.writeError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]bool{"valid": outcome.Paid})

	case http.MethodGet:
		if provider != config.PaymentProviderPayPal {
			return ctx.JSON(http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		}
		token := firstQueryParam(ctx, "token", "paypal_order_id", "order_id", "session_id")
		if token == "" {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Missing order id/token"})
		}
		outcome, err := h.checkoutUsecase.Verify(ctx.Request().Context(), domain.VerificationProof{Token: token})
		if err != nil {
			return h.writeError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]bool{"paid": outcome.Paid})
	}

	return ctx.JSON(http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
}

// Check a coupon code against the server-held secret
// (POST /verify-coupon)
func (h *Handler) VerifyCoupon(ctx echo.Context) error {
	var body map[string]any
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]bool{"valid": false})
	}
	code, ok := body["code"].(string)
	if !ok || code == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]bool{"valid": false})
	}

	return ctx.JSON(http.StatusOK, h.couponGate.Check(code))
}

// Create a raw Razorpay order
// (POST /razorpay/order)
func (h *Handler) RazorpayOrder(ctx echo.Context) error {
	var body struct {
		Amount   *float64 `json:"amount"`
		Currency string   `json:"currency"`
		Receipt  string   `json:"receipt"`
	}
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "amount required"})
	}
	if body.Amount == nil || *body.Amount <= 0 {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "amount required"})
	}
	currency := body.Currency
	if currency == "" {
		currency = "INR"
	}
	receipt := body.Receipt
	if receipt == "" {
		receipt = "rcptid_1"
	}

	// Major units in, minor units out.
	amountMinor := int64(math.Round(*body.Amount * 100))

	order, err := h.rawOrders.CreateRawOrder(ctx.Request().Context(), amountMinor, currency, receipt)
	if err != nil {
		return h.writeError(ctx, err)
	}
	return ctx.JSONBlob(http.StatusOK, order)
}

// Healthz reports liveness
// (GET /healthz)
func (h *Handler) Healthz(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) origin(ctx echo.Context) string {
	if origin := ctx.Request().Header.Get("Origin"); origin != "" {
		return origin
	}
	return h.baseURL
}

func firstQueryParam(ctx echo.Context, names ...string) string {
	for _, name := range names {
		if value := ctx.QueryParam(name); value != "" {
			return value
		}
	}
	return ""
}

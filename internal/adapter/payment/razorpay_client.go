package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/kumarshrey19021990-arch/amioverreacting/internal/domain"
	"github.com/kumarshrey19021990-arch/amioverreacting/internal/infra/httpclient"
)

const defaultRazorpayBaseURL = "https://api.razorpay.com"

// RazorpayClient drives the order-based checkout flow: order creation against
// the Razorpay API and local signature verification. Verification never
// touches the network; the signature is recomputed from the key secret.
type RazorpayClient struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Client    *http.Client
}

// NewRazorpayClient constructs a client for the given key pair.
func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		BaseURL:   defaultRazorpayBaseURL,
		KeyID:     keyID,
		KeySecret: keySecret,
		Client:    httpclient.NewPooledClient(0),
	}
}

// Name identifies the provider in errors and logs.
func (c *RazorpayClient) Name() string { return "razorpay" }

// CreateOrder creates an auto-capture order for the quote's settlement amount
// and returns the order id plus the public key the checkout widget needs.
func (c *RazorpayClient) CreateOrder(ctx context.Context, quote domain.PriceQuote, _ string) (*domain.CheckoutSession, error) {
	amountMinor, err := minorUnits(quote.SettlementAmount)
	if err != nil {
		return nil, fmt.Errorf("bad settlement amount %q: %w", quote.SettlementAmount, err)
	}

	raw, err := c.CreateRawOrder(ctx, amountMinor, quote.SettlementCurrency, "rcpt_"+uuid.NewString())
	if err != nil {
		return nil, err
	}

	var order struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	return &domain.CheckoutSession{
		OrderID:     order.ID,
		PublicKey:   c.KeyID,
		AmountMinor: amountMinor,
		Currency:    quote.SettlementCurrency,
		Display:     quote,
	}, nil
}

// CreateRawOrder posts an order for the given minor-unit amount and returns
// the provider's order document untouched. Backs the /razorpay/order
// passthrough endpoint.
func (c *RazorpayClient) CreateRawOrder(ctx context.Context, amountMinor int64, currency, receipt string) (json.RawMessage, error) {
	if c.KeyID == "" || c.KeySecret == "" {
		return nil, fmt.Errorf("%w: Razorpay credentials not set", domain.ErrConfig)
	}

	payload := map[string]any{
		"amount":          amountMinor,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/v1/orders", bytes.NewReader(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create order request: %w", err)
	}
	req.SetBasicAuth(c.KeyID, c.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamNetworkError{Provider: c.Name(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read order response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.UpstreamStatusError{Provider: c.Name(), StatusCode: resp.StatusCode, Body: string(body)}
	}

	return json.RawMessage(body), nil
}

// Verify recomputes the HMAC-SHA256 hex digest of "orderId|paymentId" keyed by
// the key secret and compares it against the supplied signature. Paid only on
// an exact match.
func (c *RazorpayClient) Verify(_ context.Context, proof domain.VerificationProof) (*domain.VerificationOutcome, error) {
	if c.KeySecret == "" {
		return nil, fmt.Errorf("%w: Razorpay key secret not set", domain.ErrConfig)
	}
	if proof.OrderID == "" || proof.PaymentID == "" || proof.Signature == "" {
		return nil, fmt.Errorf("%w: missing order id, payment id or signature", domain.ErrValidation)
	}

	mac := hmac.New(sha256.New, []byte(c.KeySecret))
	mac.Write([]byte(proof.OrderID + "|" + proof.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	paid := hmac.Equal([]byte(expected), []byte(proof.Signature))
	return &domain.VerificationOutcome{Paid: paid}, nil
}

// minorUnits converts a decimal amount string to the smallest currency unit.
func minorUnits(amount string) (int64, error) {
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(value * 100)), nil
}

var _ domain.PaymentProvider = (*RazorpayClient)(nil)

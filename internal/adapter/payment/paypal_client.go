package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kumarshrey19021990-arch/amioverreacting/internal/domain"
	"github.com/kumarshrey19021990-arch/amioverreacting/internal/infra/httpclient"
)

const (
	paypalSandboxBaseURL = "https://api-m.sandbox.paypal.com"
	paypalLiveBaseURL    = "https://api-m.paypal.com"

	orderDescription = "One-time neutral analysis and guidance"
)

type paypalOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Rel  string `json:"rel"`
		Href string `json:"href"`
	} `json:"links"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				Status string `json:"status"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

// PayPalClient drives the link-based checkout flow: a per-request
// client-credentials token, order creation returning an approval link, and
// capture-based verification.
type PayPalClient struct {
	BaseURL  string
	ClientID string
	Secret   string
	Client   *http.Client
}

// NewPayPalClient selects the sandbox or live API base from the environment
// mode flag.
func NewPayPalClient(clientID, secret, mode string) *PayPalClient {
	base := paypalSandboxBaseURL
	if strings.ToLower(mode) == "live" {
		base = paypalLiveBaseURL
	}
	return &PayPalClient{
		BaseURL:  base,
		ClientID: clientID,
		Secret:   secret,
		Client:   httpclient.NewPooledClient(0),
	}
}

// Name identifies the provider in errors and logs.
func (c *PayPalClient) Name() string { return "paypal" }

// accessToken performs the client-credential exchange. The token lives only
// for the duration of the calling request; nothing is reused across requests.
func (c *PayPalClient) accessToken(ctx context.Context) (string, error) {
	creds := base64.StdEncoding.EncodeToString([]byte(c.ClientID + ":" + c.Secret))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/v1/oauth2/token", strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+creds)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", &domain.UpstreamNetworkError{Provider: c.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &domain.UpstreamStatusError{Provider: c.Name(), StatusCode: resp.StatusCode, Body: string(body)}
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	return token.AccessToken, nil
}

// CreateOrder creates a CAPTURE-intent order for the quote's settlement
// amount and returns the approval link the browser redirects to.
func (c *PayPalClient) CreateOrder(ctx context.Context, quote domain.PriceQuote, origin string) (*domain.CheckoutSession, error) {
	if c.ClientID == "" || c.Secret == "" {
		return nil, fmt.Errorf("%w: PayPal credentials not set", domain.ErrConfig)
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{
				"amount": map[string]string{
					"currency_code": quote.SettlementCurrency,
					"value":         quote.SettlementAmount,
				},
				"description": orderDescription,
			},
		},
		"application_context": map[string]string{
			"return_url": origin + "/",
			"cancel_url": origin + "/",
		},
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/v2/checkout/orders", bytes.NewReader(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create order request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamNetworkError{Provider: c.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &domain.UpstreamStatusError{Provider: c.Name(), StatusCode: resp.StatusCode, Body: string(body)}
	}

	var order paypalOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	for _, link := range order.Links {
		if link.Rel == "approve" && link.Href != "" {
			return &domain.CheckoutSession{
				ApprovalURL: link.Href,
				OrderID:     order.ID,
				Display:     quote,
			}, nil
		}
	}
	return nil, &domain.UpstreamStatusError{Provider: c.Name(), StatusCode: resp.StatusCode, Body: "no approval link in order response"}
}

// Verify captures the order and looks for an explicit COMPLETED capture. When
// the capture call fails it falls back to fetching the order status. Safe to
// call repeatedly: PayPal treats re-capture of a captured order as idempotent.
func (c *PayPalClient) Verify(ctx context.Context, proof domain.VerificationProof) (*domain.VerificationOutcome, error) {
	if c.ClientID == "" || c.Secret == "" {
		return nil, fmt.Errorf("%w: PayPal credentials not set", domain.ErrConfig)
	}

	orderID := proof.Token
	if orderID == "" {
		orderID = proof.OrderID
	}
	if orderID == "" {
		return nil, fmt.Errorf("%w: missing order id/token", domain.ErrValidation)
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	captureURL := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.BaseURL, url.PathEscape(orderID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, captureURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create capture request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamNetworkError{Provider: c.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var order paypalOrder
		if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
			return nil, fmt.Errorf("failed to decode capture response: %w", err)
		}
		for _, unit := range order.PurchaseUnits {
			for _, capture := range unit.Payments.Captures {
				if capture.Status == "COMPLETED" {
					return &domain.VerificationOutcome{Paid: true}, nil
				}
			}
		}
		return &domain.VerificationOutcome{Paid: false}, nil
	}
	io.Copy(io.Discard, resp.Body)

	// Capture rejected (e.g. already captured by an earlier call); the order
	// status is the source of truth then.
	return c.fetchOrderStatus(ctx, token, orderID)
}

func (c *PayPalClient) fetchOrderStatus(ctx context.Context, token, orderID string) (*domain.VerificationOutcome, error) {
	orderURL := fmt.Sprintf("%s/v2/checkout/orders/%s", c.BaseURL, url.PathEscape(orderID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, orderURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create order fetch request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamNetworkError{Provider: c.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &domain.UpstreamStatusError{Provider: c.Name(), StatusCode: resp.StatusCode, Body: string(body)}
	}

	var order paypalOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}
	return &domain.VerificationOutcome{Paid: order.Status == "COMPLETED"}, nil
}

var _ domain.PaymentProvider = (*PayPalClient)(nil)

package domain

import "context"

// CheckoutSession carries what the browser needs to open a provider checkout
// UI. PayPal fills ApprovalURL; Razorpay fills OrderID + PublicKey and the
// client renders its own widget from the display quote.
type CheckoutSession struct {
	ApprovalURL string
	OrderID     string
	PublicKey   string
	AmountMinor int64
	Currency    string
	Display     PriceQuote
}

// VerificationProof is the provider-supplied evidence that an order was paid.
// Razorpay supplies the order/payment/signature triple; PayPal supplies only
// the order token.
type VerificationProof struct {
	OrderID   string
	PaymentID string
	Signature string
	Token     string
}

// VerificationOutcome is the one-shot boolean derived from provider state at
// verification time. It is never cached or stored.
type VerificationOutcome struct {
	Paid bool
}

// PaymentProvider is one payment backend behind the checkout endpoints.
// CreateOrder makes a provider-side monetary order for the quote; Verify is
// idempotent and yields Paid only on an explicit completed signal.
type PaymentProvider interface {
	CreateOrder(ctx context.Context, quote PriceQuote, origin string) (*CheckoutSession, error)
	Verify(ctx context.Context, proof VerificationProof) (*VerificationOutcome, error)
	Name() string
}

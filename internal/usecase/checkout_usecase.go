package usecase

import (
	"context"
	"log/slog"

	"github.com/kumarshrey19021990-arch/amioverreacting/internal/domain"
	"github.com/kumarshrey19021990-arch/amioverreacting/internal/infra/logger"
)

// CheckoutUsecase drives the pay path: quote the region, create a provider
// order, and later verify the provider's proof of payment. Both operations are
// stateless pass-throughs; the provider owns the order.
type CheckoutUsecase interface {
	CreateOrder(ctx context.Context, region, origin string) (*domain.CheckoutSession, error)
	Verify(ctx context.Context, proof domain.VerificationProof) (*domain.VerificationOutcome, error)
	ProviderName() string
}

type checkoutUsecase struct {
	provider domain.PaymentProvider
	log      *slog.Logger
}

// NewCheckoutUsecase wraps the configured payment provider.
func NewCheckoutUsecase(provider domain.PaymentProvider, log *slog.Logger) CheckoutUsecase {
	return &checkoutUsecase{provider: provider, log: log}
}

func (u *checkoutUsecase) CreateOrder(ctx context.Context, region, origin string) (*domain.CheckoutSession, error) {
	quote := domain.QuoteForRegion(region)

	ctx = logger.WithProvider(ctx, u.provider.Name())
	ctx = logger.WithStage(ctx, "order")

	session, err := u.provider.CreateOrder(ctx, quote, origin)
	if err != nil {
		return nil, err
	}

	u.log.InfoContext(ctx, "payment order created",
		"order_id", session.OrderID,
		"currency", quote.SettlementCurrency,
		"amount", quote.SettlementAmount)
	return session, nil
}

func (u *checkoutUsecase) Verify(ctx context.Context, proof domain.VerificationProof) (*domain.VerificationOutcome, error) {
	ctx = logger.WithProvider(ctx, u.provider.Name())
	ctx = logger.WithStage(ctx, "verify")

	outcome, err := u.provider.Verify(ctx, proof)
	if err != nil {
		return nil, err
	}

	u.log.InfoContext(ctx, "payment verification completed", "paid", outcome.Paid)
	return outcome, nil
}

func (u *checkoutUsecase) ProviderName() string {
	return u.provider.Name()
}

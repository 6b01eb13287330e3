package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kumarshrey19021990-arch/amioverreacting/internal/domain"
	"github.com/kumarshrey19021990-arch/amioverreacting/internal/infra/logger"
)

// AnalyzeInput carries the raw situation text.
type AnalyzeInput struct {
	Text string
}

// AnalyzeUsecase defines the contract for turning a situation description into
// a normalized analysis.
type AnalyzeUsecase interface {
	Execute(ctx context.Context, input AnalyzeInput) (*domain.AnalysisResult, error)
}

type analyzeUsecase struct {
	promptBuilder PromptBuilder
	provider      domain.TextAnalysisProvider
	normalizer    ResultNormalizer
	timeout       time.Duration
	log           *slog.Logger
}

// NewAnalyzeUsecase wires the prompt builder, the selected provider and the
// normalizer. The timeout is the wall-clock ceiling for the upstream call; the
// in-flight request is aborted when it elapses.
func NewAnalyzeUsecase(
	promptBuilder PromptBuilder,
	provider domain.TextAnalysisProvider,
	normalizer ResultNormalizer,
	timeout time.Duration,
	log *slog.Logger,
) AnalyzeUsecase {
	return &analyzeUsecase{
		promptBuilder: promptBuilder,
		provider:      provider,
		normalizer:    normalizer,
		timeout:       timeout,
		log:           log,
	}
}

func (u *analyzeUsecase) Execute(ctx context.Context, input AnalyzeInput) (*domain.AnalysisResult, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}

	prompt := u.promptBuilder.Build(input.Text)

	ctx = logger.WithProvider(ctx, u.provider.Name())
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	start := time.Now()
	raw, err := u.provider.Complete(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			u.log.WarnContext(ctx, "analysis request timed out",
				"elapsed", time.Since(start).String())
			return nil, fmt.Errorf("%w after %s", domain.ErrTimeout, u.timeout)
		}
		return nil, err
	}

	u.log.InfoContext(ctx, "analysis generated",
		"elapsed", time.Since(start).String(),
		"reply_bytes", len(raw))

	return u.normalizer.Normalize(raw), nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/kumarshrey19021990-arch/amioverreacting/internal/adapter/llm"
	"github.com/kumarshrey19021990-arch/amioverreacting/internal/adapter/payment"
	"github.com/kumarshrey19021990-arch/amioverreacting/internal/adapter/webapi"
	"github.com/kumarshrey19021990-arch/amioverreacting/internal/domain"
	"github.com/kumarshrey19021990-arch/amioverreacting/internal/infra/config"
	"github.com/kumarshrey19021990-arch/amioverreacting/internal/infra/logger"
	"github.com/kumarshrey19021990-arch/amioverreacting/internal/usecase"
)

func main() {
	// 1. Load Config
	_ = godotenv.Load()
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New()
	slog.SetDefault(log)
	for _, warning := range cfg.Warnings() {
		log.Warn("configuration", "warning", warning)
	}

	// 3. Initialize Providers
	var textProvider domain.TextAnalysisProvider
	switch cfg.LLMProvider {
	case config.LLMProviderGemini:
		textProvider = llm.NewGeminiClient(cfg.GoogleAPIKey, cfg.GeminiModel, cfg.AnalyzeMaxTokens)
	default:
		textProvider = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AnalyzeMaxTokens)
	}

	razorpayClient := payment.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	var paymentProvider domain.PaymentProvider
	switch cfg.PaymentProvider {
	case config.PaymentProviderRazorpay:
		paymentProvider = razorpayClient
	default:
		paymentProvider = payment.NewPayPalClient(cfg.PayPalClientID, cfg.PayPalSecret, cfg.PayPalEnv)
	}

	// 4. Initialize Usecases
	promptBuilder := usecase.NewSituationPromptBuilder()
	analyzeUsecase := usecase.NewAnalyzeUsecase(
		promptBuilder,
		textProvider,
		usecase.NewResultNormalizer(),
		cfg.AnalyzeTimeout,
		log,
	)
	checkoutUsecase := usecase.NewCheckoutUsecase(paymentProvider, log)
	couponGate := usecase.NewCouponGate(cfg.CouponCode)

	// 5. Initialize Echo & Handlers
	e := echo.New()
	e.HideBanner = true

	handler := webapi.NewHandler(
		analyzeUsecase,
		checkoutUsecase,
		couponGate,
		razorpayClient,
		cfg.BaseURL,
		log,
	)
	webapi.Register(e, handler, cfg.AnalyzeRateLimit, log)

	// 6. Start Server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info("Starting server",
			"addr", addr,
			"llm_provider", textProvider.Name(),
			"payment_provider", paymentProvider.Name())
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// 7. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}

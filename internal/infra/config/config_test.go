package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	envVars := []string{
		"PORT",
		"USE_GEMINI",
		"OPENAI_MODEL",
		"GEMINI_MODEL",
		"ANALYZE_TIMEOUT_SECONDS",
		"ANALYZE_MAX_TOKENS",
		"PAYMENT_PROVIDER",
		"PAYPAL_ENV",
		"ANALYZE_RATE_LIMIT",
	}
	for _, key := range envVars {
		_ = os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, LLMProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, 5*time.Minute, cfg.AnalyzeTimeout, "analyze ceiling should default to 5 minutes")
	assert.Equal(t, 1000, cfg.AnalyzeMaxTokens)
	assert.Equal(t, PaymentProviderPayPal, cfg.PaymentProvider)
	assert.Equal(t, "sandbox", cfg.PayPalEnv)
}

func TestLoad_GeminiFlag(t *testing.T) {
	t.Setenv("USE_GEMINI", "1")
	assert.Equal(t, LLMProviderGemini, Load().LLMProvider)

	t.Setenv("USE_GEMINI", "true")
	assert.Equal(t, LLMProviderGemini, Load().LLMProvider)

	t.Setenv("USE_GEMINI", "0")
	assert.Equal(t, LLMProviderOpenAI, Load().LLMProvider)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PAYMENT_PROVIDER", "Razorpay")
	t.Setenv("PAYPAL_ENV", "LIVE")
	t.Setenv("ANALYZE_TIMEOUT_SECONDS", "30")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, PaymentProviderRazorpay, cfg.PaymentProvider, "provider selector should be lowercased")
	assert.Equal(t, "live", cfg.PayPalEnv)
	assert.Equal(t, 30*time.Second, cfg.AnalyzeTimeout)
}

func TestGetSecret_FileIndirection(t *testing.T) {
	path := t.TempDir() + "/coupon"
	if err := os.WriteFile(path, []byte("SAVE10\n"), 0o600); err != nil {
		t.Fatalf("failed to write secret file: %v", err)
	}
	_ = os.Unsetenv("COUPON_CODE")
	t.Setenv("COUPON_CODE_FILE", path)

	cfg := Load()

	assert.Equal(t, "SAVE10", cfg.CouponCode, "secret files should be read and trimmed")
}

func TestWarnings_MissingCredentials(t *testing.T) {
	for _, key := range []string{
		"OPENAI_API_KEY", "GOOGLE_API_KEY",
		"PAYPAL_CLIENT_ID", "PAYPAL_CLIENT_SECRET",
		"RAZORPAY_KEY_ID", "RAZORPAY_KEY_SECRET",
		"COUPON_CODE", "COUPON_CODE_FILE",
		"USE_GEMINI", "PAYMENT_PROVIDER",
	} {
		_ = os.Unsetenv(key)
	}

	warnings := Load().Warnings()

	assert.Contains(t, warnings, "OPENAI_API_KEY is not set")
	assert.Contains(t, warnings, "PAYPAL_CLIENT_ID / PAYPAL_CLIENT_SECRET not set")
	assert.Contains(t, warnings, "COUPON_CODE not set, coupon gate disabled")
}

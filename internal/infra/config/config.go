package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider selector values.
const (
	LLMProviderOpenAI = "openai"
	LLMProviderGemini = "gemini"

	PaymentProviderPayPal   = "paypal"
	PaymentProviderRazorpay = "razorpay"
)

type Config struct {
	Env  string
	Port string

	// Upstream text generation
	LLMProvider      string // openai | gemini, driven by USE_GEMINI
	OpenAIAPIKey     string
	OpenAIModel      string
	GoogleAPIKey     string
	GeminiModel      string
	AnalyzeTimeout   time.Duration
	AnalyzeMaxTokens int

	// Payment
	PaymentProvider   string // paypal | razorpay
	PayPalClientID    string
	PayPalSecret      string
	PayPalEnv         string // sandbox | live
	RazorpayKeyID     string
	RazorpayKeySecret string

	// Coupon gate; empty means the feature is disabled
	CouponCode string

	// Fallback origin for payment return URLs when the request carries none
	BaseURL string

	// /analyze requests per second per client
	AnalyzeRateLimit float64
}

func Load() *Config {
	return &Config{
		Env:               getEnv("ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		LLMProvider:       llmProviderFromEnv(),
		OpenAIAPIKey:      getSecret("OPENAI_API_KEY", "OPENAI_API_KEY_FILE", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GoogleAPIKey:      getSecret("GOOGLE_API_KEY", "GOOGLE_API_KEY_FILE", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		AnalyzeTimeout:    getEnvDuration("ANALYZE_TIMEOUT_SECONDS", 5*time.Minute),
		AnalyzeMaxTokens:  getEnvInt("ANALYZE_MAX_TOKENS", 1000),
		PaymentProvider:   strings.ToLower(getEnv("PAYMENT_PROVIDER", PaymentProviderPayPal)),
		PayPalClientID:    getEnv("PAYPAL_CLIENT_ID", ""),
		PayPalSecret:      getSecret("PAYPAL_CLIENT_SECRET", "PAYPAL_CLIENT_SECRET_FILE", ""),
		PayPalEnv:         strings.ToLower(getEnv("PAYPAL_ENV", "sandbox")),
		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getSecret("RAZORPAY_KEY_SECRET", "RAZORPAY_KEY_SECRET_FILE", ""),
		CouponCode:        getSecret("COUPON_CODE", "COUPON_CODE_FILE", ""),
		BaseURL:           getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		AnalyzeRateLimit:  getEnvFloat("ANALYZE_RATE_LIMIT", 5),
	}
}

// Warnings reports missing credentials for the configured providers so the
// gaps surface at startup instead of mid-request. A missing credential is not
// fatal: the affected endpoint answers 500 until it is supplied.
func (c *Config) Warnings() []string {
	var warnings []string
	switch c.LLMProvider {
	case LLMProviderGemini:
		if c.GoogleAPIKey == "" {
			warnings = append(warnings, "GOOGLE_API_KEY is not set")
		}
	default:
		if c.OpenAIAPIKey == "" {
			warnings = append(warnings, "OPENAI_API_KEY is not set")
		}
	}
	switch c.PaymentProvider {
	case PaymentProviderRazorpay:
		if c.RazorpayKeyID == "" || c.RazorpayKeySecret == "" {
			warnings = append(warnings, "RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET not set")
		}
	default:
		if c.PayPalClientID == "" || c.PayPalSecret == "" {
			warnings = append(warnings, "PAYPAL_CLIENT_ID / PAYPAL_CLIENT_SECRET not set")
		}
	}
	if c.CouponCode == "" {
		warnings = append(warnings, "COUPON_CODE not set, coupon gate disabled")
	}
	return warnings
}

func llmProviderFromEnv() string {
	useGemini := strings.ToLower(getEnv("USE_GEMINI", ""))
	if useGemini == "1" || useGemini == "true" {
		return LLMProviderGemini
	}
	return LLMProviderOpenAI
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}

	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

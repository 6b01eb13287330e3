package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteForRegion_KnownRegions(t *testing.T) {
	tests := []struct {
		region             string
		displaySymbol      string
		displayAmount      string
		settlementCurrency string
		settlementAmount   string
	}{
		{"europe", "€", "1.99", "EUR", "1.99"},
		{"uk", "£", "1.66", "GBP", "1.66"},
		{"india", "₹", "99", "USD", "1.00"},
		{"us", "$", "1.99", "USD", "1.99"},
		{"other", "$", "1.99", "USD", "1.99"},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			quote := QuoteForRegion(tt.region)
			assert.Equal(t, tt.displaySymbol, quote.DisplaySymbol)
			assert.Equal(t, tt.displayAmount, quote.DisplayAmount)
			assert.Equal(t, tt.settlementCurrency, quote.SettlementCurrency)
			assert.Equal(t, tt.settlementAmount, quote.SettlementAmount)
		})
	}
}

func TestQuoteForRegion_IndiaDisplaysLocalSettlesUSD(t *testing.T) {
	quote := QuoteForRegion("india")

	// Display and settlement are independent: the user sees rupees, the
	// backend charges dollars.
	assert.NotEqual(t, quote.SettlementAmount, quote.DisplayAmount)
	assert.Equal(t, "USD", quote.SettlementCurrency)
}

func TestQuoteForRegion_FallbackAndCase(t *testing.T) {
	other := QuoteForRegion("other")

	assert.Equal(t, other, QuoteForRegion("mars"), "unknown regions fall back to the other tier")
	assert.Equal(t, other, QuoteForRegion(""), "missing region falls back to the other tier")
	assert.Equal(t, QuoteForRegion("india"), QuoteForRegion("INDIA"), "matching is case-insensitive")
	assert.Equal(t, QuoteForRegion("uk"), QuoteForRegion("  Uk "), "region codes are trimmed")
}

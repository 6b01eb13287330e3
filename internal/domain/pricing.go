package domain

import "strings"

// PriceQuote splits what the user sees from what the payment backend charges.
// The two are independent: india displays a rupee price but settles in USD
// because the PayPal code path does not support INR.
type PriceQuote struct {
	DisplaySymbol      string `json:"displaySymbol"`
	DisplayAmount      string `json:"displayAmount"`
	SettlementCurrency string `json:"settlementCurrency"`
	SettlementAmount   string `json:"settlementAmount"`
}

var priceTable = map[string]PriceQuote{
	"europe": {DisplaySymbol: "€", DisplayAmount: "1.99", SettlementCurrency: "EUR", SettlementAmount: "1.99"},
	"uk":     {DisplaySymbol: "£", DisplayAmount: "1.66", SettlementCurrency: "GBP", SettlementAmount: "1.66"},
	"india":  {DisplaySymbol: "₹", DisplayAmount: "99", SettlementCurrency: "USD", SettlementAmount: "1.00"},
	"us":     {DisplaySymbol: "$", DisplayAmount: "1.99", SettlementCurrency: "USD", SettlementAmount: "1.99"},
	"other":  {DisplaySymbol: "$", DisplayAmount: "1.99", SettlementCurrency: "USD", SettlementAmount: "1.99"},
}

// QuoteForRegion maps a region code onto the fixed price table. Matching is
// case-insensitive and anything unrecognized falls back to the "other" tier.
func QuoteForRegion(region string) PriceQuote {
	if quote, ok := priceTable[strings.ToLower(strings.TrimSpace(region))]; ok {
		return quote
	}
	return priceTable["other"]
}

// Package pricing holds the pure tier-price math. It never touches the
// store: callers read the current tier set and pass the percents in
// ascending tier-number order.
package pricing

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeTierPrices returns, for each percent p in order, the base price
// adjusted by p: basePrice + basePrice * (p / 100). The input order of
// percents is preserved exactly. No rounding is applied here — rounding
// happens at presentation time.
func ComputeTierPrices(basePrice decimal.Decimal, percents []decimal.Decimal) []decimal.Decimal {
	prices := make([]decimal.Decimal, len(percents))
	for i, p := range percents {
		prices[i] = basePrice.Add(basePrice.Mul(p.Div(oneHundred)))
	}
	return prices
}

// PriceVector builds a product's full price vector: the base price at
// index 0 followed by one adjusted price per tier.
func PriceVector(basePrice decimal.Decimal, percents []decimal.Decimal) []decimal.Decimal {
	return append([]decimal.Decimal{basePrice}, ComputeTierPrices(basePrice, percents)...)
}

// Round2 rounds to 2 decimal places, half up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

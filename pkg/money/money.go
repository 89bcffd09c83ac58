// Package money formats stored float amounts for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds half away from zero to two decimals
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Format renders v with exactly two decimals, e.g. "236.00"
func Format(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatWithSymbol prefixes the formatted amount with a currency symbol
func FormatWithSymbol(symbol string, v float64) string {
	if symbol == "" {
		return Format(v)
	}
	sep := ""
	if !strings.HasSuffix(symbol, " ") && len(symbol) > 1 {
		sep = " "
	}
	return symbol + sep + Format(v)
}

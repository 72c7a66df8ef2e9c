package payroll

import "github.com/shopspring/decimal"

// RoundCurrency rounds to two fractional digits, half away from zero.
// Ledger entries are rounded exactly once, at record time; aggregates sum
// already-rounded values and are never re-rounded.
func RoundCurrency(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// dec parses a statutory constant. Panics on malformed literals, which only
// exist in rate tables defined in this package.
func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

var (
	twelve     = decimal.NewFromInt(12)
	oneHundred = decimal.NewFromInt(100)
)

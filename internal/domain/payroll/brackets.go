package payroll

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Bracket is one slice of a progressive tax table: the marginal rate applied
// to income between Lower (exclusive) and Upper (inclusive).
type Bracket struct {
	Lower decimal.Decimal
	Upper decimal.Decimal
	Rate  decimal.Decimal
}

// EvaluateBrackets computes progressive tax over an ordered, ascending,
// non-overlapping bracket table. Evaluation stops at the first bracket whose
// lower bound is at or above the base. Returns the currency-rounded tax and a
// derivation note listing each applied slice, or "No tax" when none applied.
func EvaluateBrackets(base decimal.Decimal, brackets []Bracket) (decimal.Decimal, string) {
	tax := decimal.Zero
	var parts []string

	for _, b := range brackets {
		if base.LessThanOrEqual(b.Lower) {
			break
		}
		slice := decimal.Min(base, b.Upper).Sub(b.Lower)
		tax = tax.Add(slice.Mul(b.Rate))
		parts = append(parts, fmt.Sprintf("%s%% on %s", b.Rate.Mul(oneHundred).String(), slice.String()))
	}

	note := "No tax"
	if len(parts) > 0 {
		note = strings.Join(parts, " + ")
	}
	return RoundCurrency(tax), note
}

package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEvaluateBracketsZeroBase(t *testing.T) {
	tax, note := EvaluateBrackets(decimal.Zero, CuracaoRates2026().TaxBrackets)
	if !tax.IsZero() {
		t.Fatalf("expected zero tax, got %s", tax)
	}
	if note != "No tax" {
		t.Fatalf("expected 'No tax' note, got %q", note)
	}
}

func TestEvaluateBracketsSingleSlice(t *testing.T) {
	brackets := []Bracket{
		{Lower: dec("0"), Upper: dec("1000"), Rate: dec("0.10")},
		{Lower: dec("1000"), Upper: dec("999999999"), Rate: dec("0.20")},
	}

	tax, note := EvaluateBrackets(dec("800"), brackets)
	if !tax.Equal(dec("80")) {
		t.Fatalf("expected 80, got %s", tax)
	}
	if note != "10% on 800" {
		t.Fatalf("unexpected note %q", note)
	}
}

func TestEvaluateBracketsMultipleSlices(t *testing.T) {
	brackets := []Bracket{
		{Lower: dec("0"), Upper: dec("1000"), Rate: dec("0.10")},
		{Lower: dec("1000"), Upper: dec("2000"), Rate: dec("0.20")},
		{Lower: dec("2000"), Upper: dec("999999999"), Rate: dec("0.30")},
	}

	tax, note := EvaluateBrackets(dec("2500"), brackets)
	// 100 + 200 + 150
	if !tax.Equal(dec("450")) {
		t.Fatalf("expected 450, got %s", tax)
	}
	if note != "10% on 1000 + 20% on 1000 + 30% on 500" {
		t.Fatalf("unexpected note %q", note)
	}
}

func TestEvaluateBracketsMonotonic(t *testing.T) {
	brackets := CuracaoRates2026().TaxBrackets

	previous := decimal.Zero
	for _, base := range []string{"0", "500", "2116.67", "2500", "3783.33", "6000", "9000", "12000", "50000"} {
		tax, _ := EvaluateBrackets(dec(base), brackets)
		if tax.LessThan(previous) {
			t.Fatalf("tax decreased at base %s: %s < %s", base, tax, previous)
		}
		previous = tax
	}
}

package payroll

import (
	"context"
	"strings"
	"testing"
	"time"
)

func testEmployee(jurisdiction, salary string) EmployeeInput {
	return EmployeeInput{
		EmployeeID:   "emp-001",
		Name:         "Maria Martina",
		Jurisdiction: jurisdiction,
		BaseSalary:   dec(salary),
		PeriodStart:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:    time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func curacaoEngine(tables *TableProvider) *Engine {
	return NewEngine(NewCuracao(FixedCuracaoRates(CuracaoRates2026()), tables))
}

func findLine(t *testing.T, result *CalculationResult, code string) LineItem {
	t.Helper()
	var found *LineItem
	for i := range result.LineItems {
		if result.LineItems[i].Code == code {
			if found != nil {
				t.Fatalf("duplicate %s line item", code)
			}
			found = &result.LineItems[i]
		}
	}
	if found == nil {
		t.Fatalf("missing %s line item", code)
	}
	return *found
}

func TestCuracaoStandardSalary(t *testing.T) {
	engine := curacaoEngine(nil)

	result, err := engine.Calculate(context.Background(), testEmployee(JurisdictionCuracao, "4000"))
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	if !result.GrossTotal.Equal(dec("4000")) {
		t.Fatalf("expected gross 4000, got %s", result.GrossTotal)
	}
	if !result.NetSalary.LessThan(result.GrossTotal) {
		t.Fatalf("net %s not below gross %s", result.NetSalary, result.GrossTotal)
	}

	// Premium income is 4000 - 500/12; AOV/AWW 6.5%, BVZ 4.3%, AVBZ 1.5%
	// of it; wage tax from bracket fallback less the monthly basisaftrek.
	if tax := findLine(t, result, CodeTax); !tax.Amount.Equal(dec("269.86")) {
		t.Fatalf("expected tax 269.86, got %s", tax.Amount)
	}
	if aov := findLine(t, result, CodeAOVAWW); !aov.Amount.Equal(dec("257.29")) {
		t.Fatalf("expected AOV/AWW 257.29, got %s", aov.Amount)
	}
	if bvz := findLine(t, result, CodeBVZ); !bvz.Amount.Equal(dec("170.21")) {
		t.Fatalf("expected BVZ 170.21, got %s", bvz.Amount)
	}
	if avbz := findLine(t, result, CodeAVBZ); !avbz.Amount.Equal(dec("59.37")) {
		t.Fatalf("expected AVBZ 59.37, got %s", avbz.Amount)
	}
	if !result.NetSalary.Equal(dec("3243.27")) {
		t.Fatalf("expected net 3243.27, got %s", result.NetSalary)
	}

	// Cesantia is employer-funded: in the statutory grouping workflows it
	// must never appear as an employee deduction line.
	for _, item := range result.LineItems {
		if item.Code == CodeCesantia {
			t.Fatal("cesantia recorded as an employee-side line item")
		}
	}
}

func TestCuracaoKortingReducesAOV(t *testing.T) {
	engine := curacaoEngine(nil)

	result, err := engine.Calculate(context.Background(), testEmployee(JurisdictionCuracao, "1200"))
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	aov := findLine(t, result, CodeAOVAWW)
	if !aov.Amount.Equal(dec("75.29")) {
		t.Fatalf("expected raw AOV/AWW 75.29, got %s", aov.Amount)
	}

	korting := findLine(t, result, CodeKorting)
	if !korting.Amount.Equal(dec("-25.14")) {
		t.Fatalf("expected korting -25.14, got %s", korting.Amount)
	}
	if !korting.Amount.IsNegative() {
		t.Fatal("korting must be recorded as a negative deduction")
	}

	// Low income: the basisaftrek wipes out the bracket tax entirely.
	if tax := findLine(t, result, CodeTax); !tax.Amount.IsZero() {
		t.Fatalf("expected zero tax, got %s", tax.Amount)
	}

	// Annual premium income ~13,900 sits in the 2.8% gliding band.
	if bvz := findLine(t, result, CodeBVZ); !bvz.Amount.Equal(dec("48.41")) {
		t.Fatalf("expected BVZ 48.41, got %s", bvz.Amount)
	}

	// Below the AVBZ threshold the reduced 0.5% rate applies.
	if avbz := findLine(t, result, CodeAVBZ); !avbz.Amount.Equal(dec("5.79")) {
		t.Fatalf("expected AVBZ 5.79, got %s", avbz.Amount)
	}
}

func TestCuracaoBVZExemptionBelowThreshold(t *testing.T) {
	engine := curacaoEngine(nil)

	result, err := engine.Calculate(context.Background(), testEmployee(JurisdictionCuracao, "900"))
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	bvz := findLine(t, result, CodeBVZ)
	if !bvz.Amount.IsZero() {
		t.Fatalf("expected BVZ exemption, got %s", bvz.Amount)
	}
	if !strings.Contains(bvz.Notes, "Exempt") {
		t.Fatalf("expected exemption note, got %q", bvz.Notes)
	}
}

func TestCuracaoAOVExemption(t *testing.T) {
	engine := curacaoEngine(nil)

	emp := testEmployee(JurisdictionCuracao, "4000")
	emp.AOVExempt = true
	result, err := engine.Calculate(context.Background(), emp)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	for _, item := range result.LineItems {
		if item.Code == CodeAOVAWW || item.Code == CodeKorting {
			t.Fatalf("unexpected %s line for AOV-exempt employee", item.Code)
		}
	}

	exemptWarned := false
	for _, warning := range result.Warnings {
		if strings.Contains(warning, "AOV/AWW exempt") {
			exemptWarned = true
		}
	}
	if !exemptWarned {
		t.Fatalf("expected AOV exemption warning, got %v", result.Warnings)
	}
}

func TestCuracaoCapAppliesAtHighIncome(t *testing.T) {
	engine := curacaoEngine(nil)

	result, err := engine.Calculate(context.Background(), testEmployee(JurisdictionCuracao, "20000"))
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	// Premium income exceeds the 100,000/12 AOV cap, so the premium is
	// exactly rate x cap.
	aov := findLine(t, result, CodeAOVAWW)
	if aov.BaseAmount == nil || !aov.BaseAmount.Equal(dec("8333.33")) {
		t.Fatalf("expected capped base 8333.33, got %v", aov.BaseAmount)
	}
	if !aov.Amount.Equal(dec("541.67")) {
		t.Fatalf("expected capped AOV/AWW 541.67, got %s", aov.Amount)
	}

	// High income: no korting.
	if korting := findLine(t, result, CodeKorting); !korting.Amount.IsZero() {
		t.Fatalf("expected zero korting, got %s", korting.Amount)
	}
}

func TestCuracaoTableLookupUsedWhenAvailable(t *testing.T) {
	path := writeTable(t, "min,max,tax\n0,,500\n")
	engine := curacaoEngine(NewTableProvider(CSVTableSource{Path: path}))

	result, err := engine.Calculate(context.Background(), testEmployee(JurisdictionCuracao, "4000"))
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	// Table tax 500 less the monthly basisaftrek 242.92.
	tax := findLine(t, result, CodeTax)
	if !tax.Amount.Equal(dec("257.08")) {
		t.Fatalf("expected table-derived tax 257.08, got %s", tax.Amount)
	}
	if !strings.Contains(tax.Notes, "table lookup") {
		t.Fatalf("expected table lookup note, got %q", tax.Notes)
	}
}

func TestCuracaoBracketFallbackNoted(t *testing.T) {
	engine := curacaoEngine(NewTableProvider(CSVTableSource{Path: "does/not/exist.csv"}))

	result, err := engine.Calculate(context.Background(), testEmployee(JurisdictionCuracao, "4000"))
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	tax := findLine(t, result, CodeTax)
	if !strings.Contains(tax.Notes, "fallback") {
		t.Fatalf("expected fallback note, got %q", tax.Notes)
	}
	if !tax.Amount.Equal(dec("269.86")) {
		t.Fatalf("expected bracket tax 269.86, got %s", tax.Amount)
	}
}

func TestCuracaoCreditFloorNeverNegative(t *testing.T) {
	engine := curacaoEngine(nil)

	for _, salary := range []string{"100", "500", "41.67", "1000", "2300"} {
		result, err := engine.Calculate(context.Background(), testEmployee(JurisdictionCuracao, salary))
		if err != nil {
			t.Fatalf("salary %s: %v", salary, err)
		}

		if tax := findLine(t, result, CodeTax); tax.Amount.IsNegative() {
			t.Fatalf("salary %s: negative tax %s", salary, tax.Amount)
		}

		aov := findLine(t, result, CodeAOVAWW)
		korting := findLine(t, result, CodeKorting)
		if aov.Amount.Add(korting.Amount).IsNegative() {
			t.Fatalf("salary %s: korting %s exceeds premium %s", salary, korting.Amount, aov.Amount)
		}
		if contribution := result.StatutoryDeductions[CodeAOVAWW]; contribution.IsNegative() {
			t.Fatalf("salary %s: negative AOV/AWW contribution %s", salary, contribution)
		}
	}
}

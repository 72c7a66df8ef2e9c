package payroll

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func fullEngine() *Engine {
	return NewEngine(
		NewCuracao(FixedCuracaoRates(CuracaoRates2026()), nil),
		NewStMaarten(FixedStMaartenRates(StMaartenRates2026())),
		NewAruba(FixedBracketRates(ArubaRates2026())),
		NewBonaire(FixedBracketRates(BonaireRates2026())),
	)
}

func TestEngineUnknownJurisdiction(t *testing.T) {
	engine := fullEngine()
	_, err := engine.Calculate(context.Background(), testEmployee("atlantis", "4000"))
	if err == nil {
		t.Fatal("expected error for unknown jurisdiction")
	}
}

func TestEngineJurisdictionsSorted(t *testing.T) {
	got := fullEngine().Jurisdictions()
	want := []string{"aruba", "bonaire", "curacao", "st_maarten"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestReconciliationIdentity(t *testing.T) {
	engine := fullEngine()

	for _, jurisdiction := range engine.Jurisdictions() {
		emp := testEmployee(jurisdiction, "5250.50")
		emp.OvertimeHours = dec("8")
		emp.Allowances = map[string]decimal.Decimal{"transport": dec("150"), "phone": dec("75")}
		emp.Deductions = map[string]decimal.Decimal{"pension_plan": dec("120.33")}

		result, err := engine.Calculate(context.Background(), emp)
		if err != nil {
			t.Fatalf("%s: %v", jurisdiction, err)
		}

		lineSum := decimal.Zero
		for _, item := range result.LineItems {
			if item.Category == CategoryDeduction {
				lineSum = lineSum.Add(item.Amount)
			}
		}
		if !lineSum.Equal(result.DeductionsTotal) {
			t.Fatalf("%s: deduction lines sum to %s, total is %s", jurisdiction, lineSum, result.DeductionsTotal)
		}

		payable := emp.BaseSalary.Add(dec("150")) // phone is not disbursed
		if !result.NetSalary.Equal(payable.Sub(result.DeductionsTotal)) {
			t.Fatalf("%s: net %s does not reconcile with payable gross %s - deductions %s",
				jurisdiction, result.NetSalary, payable, result.DeductionsTotal)
		}
	}
}

func TestNonCashAllowanceExcludedFromNet(t *testing.T) {
	engine := fullEngine()

	base := testEmployee(JurisdictionAruba, "3000")
	withPhone := testEmployee(JurisdictionAruba, "3000")
	withPhone.Allowances = map[string]decimal.Decimal{"Phone": dec("100")}

	plain, err := engine.Calculate(context.Background(), base)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	phone, err := engine.Calculate(context.Background(), withPhone)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	if !phone.GrossTotal.Equal(dec("3100")) {
		t.Fatalf("phone allowance missing from gross: %s", phone.GrossTotal)
	}
	if _, ok := phone.Earnings["ALW_PHONE"]; !ok {
		t.Fatalf("expected ALW_PHONE earning, got %v", phone.Earnings)
	}

	// The benefit is taxed but not paid out, so net can only drop.
	if phone.NetSalary.GreaterThan(plain.NetSalary) {
		t.Fatalf("non-cash benefit increased net: %s > %s", phone.NetSalary, plain.NetSalary)
	}
}

func TestTaxExemptionIdempotence(t *testing.T) {
	engine := fullEngine()

	for _, salary := range []string{"800", "4000", "25000"} {
		emp := testEmployee(JurisdictionStMaarten, salary)
		emp.TaxExempt = true

		result, err := engine.Calculate(context.Background(), emp)
		if err != nil {
			t.Fatalf("salary %s: %v", salary, err)
		}

		tax := findLine(t, result, CodeTax)
		if !tax.Amount.IsZero() {
			t.Fatalf("salary %s: exempt employee taxed %s", salary, tax.Amount)
		}
		if !strings.Contains(tax.Name, "Exempt") && !strings.Contains(tax.Notes, "exempt") {
			t.Fatalf("salary %s: no exemption marker on %+v", salary, tax)
		}
	}
}

func TestTaxOverridePercentage(t *testing.T) {
	engine := fullEngine()

	pct := dec("10")
	emp := testEmployee(JurisdictionCuracao, "4000")
	emp.TaxPercentage = &pct

	result, err := engine.Calculate(context.Background(), emp)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	tax := findLine(t, result, CodeTax)
	if !tax.Amount.Equal(dec("400")) {
		t.Fatalf("expected override tax 400, got %s", tax.Amount)
	}
	if !strings.Contains(tax.Notes, "Custom rate") {
		t.Fatalf("expected custom rate note, got %q", tax.Notes)
	}
}

func TestDeterministicReruns(t *testing.T) {
	engine := fullEngine()

	emp := testEmployee(JurisdictionCuracao, "4321.99")
	emp.OvertimeHours = dec("12")
	emp.Allowances = map[string]decimal.Decimal{"housing": dec("350"), "transport": dec("80"), "phone": dec("60")}
	emp.Deductions = map[string]decimal.Decimal{"loan": dec("90"), "union": dec("15")}

	first, err := engine.Calculate(context.Background(), emp)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	second, err := engine.Calculate(context.Background(), emp)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	// The calculation date differs between runs; everything else must be
	// byte-identical.
	first.CalculationDate = second.CalculationDate
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("reruns differ:\n%s\n%s", a, b)
	}
}

func TestOvertimeDerivedHourlyRate(t *testing.T) {
	engine := fullEngine()

	emp := testEmployee(JurisdictionBonaire, "3200")
	emp.OvertimeHours = dec("10")

	result, err := engine.Calculate(context.Background(), emp)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	// 3200/160 = 20/hour, x1.5 = 30/hour, x10 hours.
	overtime := findLine(t, result, CodeOvertime)
	if !overtime.Amount.Equal(dec("300")) {
		t.Fatalf("expected overtime 300, got %s", overtime.Amount)
	}
}

func TestOvertimeStatedHourlyRate(t *testing.T) {
	engine := fullEngine()

	hourly := dec("25")
	emp := testEmployee(JurisdictionBonaire, "3200")
	emp.HourlyRate = &hourly
	emp.OvertimeHours = dec("10")

	result, err := engine.Calculate(context.Background(), emp)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	overtime := findLine(t, result, CodeOvertime)
	if !overtime.Amount.Equal(dec("375")) {
		t.Fatalf("expected overtime 375, got %s", overtime.Amount)
	}
}

func TestOtherDeductionLines(t *testing.T) {
	engine := fullEngine()

	emp := testEmployee(JurisdictionAruba, "3000")
	emp.Deductions = map[string]decimal.Decimal{"pension_plan": dec("100.50")}

	result, err := engine.Calculate(context.Background(), emp)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	ded := findLine(t, result, "DED_PENSION_PLAN")
	if ded.Name != "Pension Plan" {
		t.Fatalf("expected display name 'Pension Plan', got %q", ded.Name)
	}
	if amount, ok := result.OtherDeductions["DED_PENSION_PLAN"]; !ok || !amount.Equal(dec("100.50")) {
		t.Fatalf("expected other deduction 100.50, got %v", result.OtherDeductions)
	}
}

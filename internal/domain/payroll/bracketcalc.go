package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

// bracketCalculator covers jurisdictions whose wage tax is plain progressive
// brackets with no statutory contributions. Aruba and Bonaire are instances
// of it until their social insurance rules are modeled.
type bracketCalculator struct {
	code    string
	name    string
	taxName string
	rates   BracketRateResolver
}

// NewAruba builds the Aruba calculator.
func NewAruba(rates BracketRateResolver) Calculator {
	return &bracketCalculator{
		code:    JurisdictionAruba,
		name:    "Aruba",
		taxName: "Income Tax",
		rates:   rates,
	}
}

// NewBonaire builds the Bonaire calculator.
func NewBonaire(rates BracketRateResolver) Calculator {
	return &bracketCalculator{
		code:    JurisdictionBonaire,
		name:    "Bonaire",
		taxName: "Payroll Tax",
		rates:   rates,
	}
}

func (b *bracketCalculator) Jurisdiction() string { return b.code }

func (b *bracketCalculator) Name() string { return b.name }

func (b *bracketCalculator) ComputeGross(run *Run, emp EmployeeInput) decimal.Decimal {
	return grossEarnings(run, emp, b.rates(emp.PeriodStart).OvertimeMultiplier)
}

func (b *bracketCalculator) ComputeTax(ctx context.Context, run *Run, emp EmployeeInput, gross decimal.Decimal) decimal.Decimal {
	if amount, handled := taxShortCircuit(run, emp, gross, b.taxName); handled {
		return amount
	}

	tax, note := EvaluateBrackets(gross, b.rates(emp.PeriodStart).TaxBrackets)
	base := gross
	return run.Ledger.Record(LineItem{
		Code:       CodeTax,
		Name:       b.taxName,
		Category:   CategoryDeduction,
		Amount:     tax,
		BaseAmount: &base,
		Notes:      note,
	})
}

func (b *bracketCalculator) ComputeSocialContributions(run *Run, emp EmployeeInput, gross decimal.Decimal) map[string]decimal.Decimal {
	return map[string]decimal.Decimal{}
}

func (b *bracketCalculator) ComputeOtherDeductions(run *Run, emp EmployeeInput) decimal.Decimal {
	return otherDeductions(run, emp)
}

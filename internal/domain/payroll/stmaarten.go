package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

// StMaarten applies progressive income tax and a single capped social
// security contribution.
type StMaarten struct {
	rates StMaartenRateResolver
}

func NewStMaarten(rates StMaartenRateResolver) *StMaarten {
	return &StMaarten{rates: rates}
}

func (s *StMaarten) Jurisdiction() string { return JurisdictionStMaarten }

func (s *StMaarten) Name() string { return "St. Maarten" }

func (s *StMaarten) ComputeGross(run *Run, emp EmployeeInput) decimal.Decimal {
	return grossEarnings(run, emp, s.rates(emp.PeriodStart).OvertimeMultiplier)
}

func (s *StMaarten) ComputeTax(ctx context.Context, run *Run, emp EmployeeInput, gross decimal.Decimal) decimal.Decimal {
	if amount, handled := taxShortCircuit(run, emp, gross, "Income Tax"); handled {
		return amount
	}

	tax, note := EvaluateBrackets(gross, s.rates(emp.PeriodStart).TaxBrackets)
	base := gross
	return run.Ledger.Record(LineItem{
		Code:       CodeTax,
		Name:       "Income Tax",
		Category:   CategoryDeduction,
		Amount:     tax,
		BaseAmount: &base,
		Notes:      note,
	})
}

func (s *StMaarten) ComputeSocialContributions(run *Run, emp EmployeeInput, gross decimal.Decimal) map[string]decimal.Decimal {
	rates := s.rates(emp.PeriodStart)

	base := decimal.Min(gross, rates.SocialSecurityMax)
	effectiveBase := base
	rate := rates.SocialSecurityRate
	amount := run.Ledger.Record(LineItem{
		Code:       CodeSocial,
		Name:       "Social Security",
		Category:   CategoryDeduction,
		Amount:     base.Mul(rate),
		Rate:       &rate,
		BaseAmount: &effectiveBase,
	})

	return map[string]decimal.Decimal{CodeSocial: amount}
}

func (s *StMaarten) ComputeOtherDeductions(run *Run, emp EmployeeInput) decimal.Decimal {
	return otherDeductions(run, emp)
}

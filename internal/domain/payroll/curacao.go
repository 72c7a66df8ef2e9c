package payroll

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Curacao implements the 2026 Curaçao rule set: wage tax (loonbelasting)
// from the official monthly table with bracket fallback, AOV/AWW with a
// means-tested premium credit, BVZ with an exemption threshold and gliding
// discount scale, AVBZ with a reduced low-income rate, and employer-funded
// Cesantia.
type Curacao struct {
	rates  CuracaoRateResolver
	tables *TableProvider
}

// NewCuracao builds the calculator. tables may be nil, in which case wage
// tax always comes from the progressive brackets.
func NewCuracao(rates CuracaoRateResolver, tables *TableProvider) *Curacao {
	return &Curacao{rates: rates, tables: tables}
}

func (c *Curacao) Jurisdiction() string { return JurisdictionCuracao }

func (c *Curacao) Name() string { return "Curaçao" }

func (c *Curacao) ComputeGross(run *Run, emp EmployeeInput) decimal.Decimal {
	return grossEarnings(run, emp, c.rates(emp.PeriodStart).OvertimeMultiplier)
}

// premiumIncome is the normalized monthly base (grondslag) for every
// statutory formula: gross minus the monthly share of the fixed annual
// deduction, floored at zero.
func premiumIncome(gross decimal.Decimal, rates CuracaoRates) decimal.Decimal {
	income := gross.Sub(rates.FixedAnnualDeduction.Div(twelve))
	return decimal.Max(income, decimal.Zero)
}

// kortingMonthly is the AOV/AWW premium credit on a monthly basis:
// (base − percentage × annual premium income) × rate / 12, zero at or above
// the cutoff income and never negative.
func kortingMonthly(annualPremiumIncome decimal.Decimal, rates CuracaoRates) decimal.Decimal {
	if annualPremiumIncome.GreaterThanOrEqual(rates.KortingMaxIncome) {
		return decimal.Zero
	}
	annual := rates.KortingBase.Sub(rates.KortingPercentage.Mul(annualPremiumIncome)).Mul(rates.KortingRate)
	return decimal.Max(annual, decimal.Zero).Div(twelve)
}

// bvzGlidingDiscount returns the discount fraction for annual incomes inside
// the gliding scale; the discount decreases step-wise as income rises.
func bvzGlidingDiscount(annualIncome decimal.Decimal, rates CuracaoRates) decimal.Decimal {
	if annualIncome.LessThan(rates.BVZGlidingScaleFrom) || annualIncome.GreaterThanOrEqual(rates.BVZGlidingScaleTo) {
		return decimal.Zero
	}
	for _, band := range rates.BVZGlidingScale {
		if annualIncome.GreaterThanOrEqual(band.From) && annualIncome.LessThan(band.To) {
			return band.Discount
		}
	}
	return decimal.Zero
}

// ComputeTax derives the wage tax through the statutory chain: premium
// income, the tax-deductible AOV/AWW premium, then table lookup (or bracket
// fallback) on the remaining tax base, less the monthly basisaftrek. The
// step order is load-bearing; the AOV/AWW premium must come off the base
// before the tax is looked up.
func (c *Curacao) ComputeTax(ctx context.Context, run *Run, emp EmployeeInput, gross decimal.Decimal) decimal.Decimal {
	if amount, handled := taxShortCircuit(run, emp, gross, "Wage Tax"); handled {
		return amount
	}

	rates := c.rates(emp.PeriodStart)

	income := premiumIncome(gross, rates)
	annualIncome := income.Mul(twelve)

	aovBase := decimal.Min(income, rates.AOVMaxAnnual.Div(twelve))
	aovRaw := aovBase.Mul(rates.AOVEmployeeRate)
	aovFinal := decimal.Max(aovRaw.Sub(kortingMonthly(annualIncome, rates)), decimal.Zero)

	taxBase := income.Sub(aovFinal)

	var rawTax decimal.Decimal
	var method string
	if tableTax, ok := c.tables.Lookup(ctx, taxBase); ok {
		rawTax = tableTax
		method = fmt.Sprintf("Official table lookup (%s)", RoundCurrency(taxBase).String())
	} else {
		var note string
		rawTax, note = EvaluateBrackets(taxBase, rates.TaxBrackets)
		method = "Progressive brackets (fallback)"
		run.Note("Tax table unavailable; progressive brackets used: " + note)
	}

	credit := rates.BasicTaxCredit.Div(twelve)
	finalTax := decimal.Max(rawTax.Sub(credit), decimal.Zero)

	base := RoundCurrency(taxBase)
	return run.Ledger.Record(LineItem{
		Code:       CodeTax,
		Name:       "Wage Tax (Loonbelasting)",
		Category:   CategoryDeduction,
		Amount:     finalTax,
		BaseAmount: &base,
		Notes: fmt.Sprintf("%s | Gross tax: %s - Basisaftrek: %s",
			method, RoundCurrency(rawTax).String(), RoundCurrency(credit).String()),
	})
}

func (c *Curacao) ComputeSocialContributions(run *Run, emp EmployeeInput, gross decimal.Decimal) map[string]decimal.Decimal {
	rates := c.rates(emp.PeriodStart)
	contributions := make(map[string]decimal.Decimal)

	income := premiumIncome(gross, rates)
	annualIncome := income.Mul(twelve)

	// AOV/AWW, first to match the loonstaat order.
	if emp.AOVExempt {
		run.Warn("Employee is AOV/AWW exempt")
		contributions[CodeAOVAWW] = decimal.Zero
	} else {
		aovBase := decimal.Min(income, rates.AOVMaxAnnual.Div(twelve))
		base := RoundCurrency(aovBase)
		rate := rates.AOVEmployeeRate
		aovRaw := run.Ledger.Record(LineItem{
			Code:       CodeAOVAWW,
			Name:       fmt.Sprintf("AOV/AWW (%s%%)", rate.Mul(oneHundred).String()),
			Category:   CategoryDeduction,
			Amount:     aovBase.Mul(rate),
			Rate:       &rate,
			BaseAmount: &base,
			Notes:      "Pension & Widow/er Insurance",
		})

		korting := kortingMonthly(annualIncome, rates)
		kortingNote := fmt.Sprintf("Income >= %s", rates.KortingMaxIncome.String())
		if annualIncome.LessThan(rates.KortingMaxIncome) {
			kortingNote = fmt.Sprintf("Credit: income < %s", rates.KortingMaxIncome.String())
		}
		// The credit can only offset the premium it applies to, so the
		// recorded credit is capped at the recorded premium and the final
		// contribution always reconciles with the two lines.
		kortingApplied := run.Ledger.Record(LineItem{
			Code:     CodeKorting,
			Name:     "Premie Korting",
			Category: CategoryDeduction,
			Amount:   decimal.Min(RoundCurrency(korting), aovRaw).Neg(),
			Notes:    kortingNote,
		})

		contributions[CodeAOVAWW] = aovRaw.Add(kortingApplied)
	}

	// BVZ, second.
	if annualIncome.LessThan(rates.BVZExemptionAnnual) {
		contributions[CodeBVZ] = run.Ledger.Record(LineItem{
			Code:     CodeBVZ,
			Name:     "BVZ (Health Insurance)",
			Category: CategoryDeduction,
			Amount:   decimal.Zero,
			Notes:    fmt.Sprintf("Exempt: income below %s/year", rates.BVZExemptionAnnual.String()),
		})
	} else {
		bvzBase := decimal.Min(income, rates.BVZMaxAnnual.Div(twelve))
		bvzRaw := bvzBase.Mul(rates.BVZEmployeeRate)

		discount := bvzGlidingDiscount(annualIncome, rates)
		bvzFinal := bvzRaw.Sub(bvzRaw.Mul(discount))

		notes := "Health Insurance"
		if discount.IsPositive() {
			notes = fmt.Sprintf("Health Insurance | Discount: -%s%%", discount.Mul(oneHundred).String())
		}

		base := RoundCurrency(bvzBase)
		rate := rates.BVZEmployeeRate
		contributions[CodeBVZ] = run.Ledger.Record(LineItem{
			Code:       CodeBVZ,
			Name:       fmt.Sprintf("BVZ (%s%%)", rate.Mul(oneHundred).String()),
			Category:   CategoryDeduction,
			Amount:     bvzFinal,
			Rate:       &rate,
			BaseAmount: &base,
			Notes:      notes,
		})
	}

	// AVBZ, third, always capped; a reduced rate applies below the threshold.
	avbzBase := decimal.Min(income, rates.AVBZMaxAnnual.Div(twelve))
	avbzRate := rates.AVBZEmployeeRate
	rateNote := fmt.Sprintf("%s%%", avbzRate.Mul(oneHundred).String())
	if annualIncome.LessThan(rates.AVBZReducedThreshold) {
		avbzRate = rates.AVBZReducedRate
		rateNote = fmt.Sprintf("%s%% (reduced rate)", avbzRate.Mul(oneHundred).String())
	}

	base := RoundCurrency(avbzBase)
	contributions[CodeAVBZ] = run.Ledger.Record(LineItem{
		Code:       CodeAVBZ,
		Name:       "AVBZ (Special Medical)",
		Category:   CategoryDeduction,
		Amount:     avbzBase.Mul(avbzRate),
		Rate:       &avbzRate,
		BaseAmount: &base,
		Notes:      rateNote,
	})

	// Cesantia is employer-funded only: present in the contribution map so
	// downstream totals line up, never an employee-side deduction.
	contributions[CodeCesantia] = decimal.Zero

	return contributions
}

func (c *Curacao) ComputeOtherDeductions(run *Run, emp EmployeeInput) decimal.Decimal {
	return otherDeductions(run, emp)
}

package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statutory rates are legal constants revised yearly. They are plain values
// resolved per period start, so a new year's figures are registered as data
// without touching calculator code.

// GlidingBand is one step of a sliding discount scale over annual income.
type GlidingBand struct {
	From     decimal.Decimal
	To       decimal.Decimal
	Discount decimal.Decimal
}

// CuracaoRates holds the statutory figures for one effective period of the
// Curaçao rule set. Annual figures are annual; monthly derivations happen in
// the calculator.
type CuracaoRates struct {
	TaxBrackets []Bracket

	// Annual basic tax credit (basisaftrek) subtracted from table tax.
	BasicTaxCredit decimal.Decimal
	// Annual fixed deduction (vaste aftrek) for work expenses.
	FixedAnnualDeduction decimal.Decimal

	// AOV/AWW old-age and widow/er pension.
	AOVEmployeeRate decimal.Decimal
	AOVMaxAnnual    decimal.Decimal

	// AOV/AWW premium credit (korting), means-tested on annual premium income.
	KortingBase       decimal.Decimal
	KortingPercentage decimal.Decimal
	KortingRate       decimal.Decimal
	KortingMaxIncome  decimal.Decimal

	// BVZ basic health insurance.
	BVZEmployeeRate     decimal.Decimal
	BVZMaxAnnual        decimal.Decimal
	BVZExemptionAnnual  decimal.Decimal
	BVZGlidingScale     []GlidingBand
	BVZGlidingScaleFrom decimal.Decimal
	BVZGlidingScaleTo   decimal.Decimal

	// AVBZ special medical costs, with a reduced rate below a threshold.
	AVBZEmployeeRate     decimal.Decimal
	AVBZReducedRate      decimal.Decimal
	AVBZReducedThreshold decimal.Decimal
	AVBZMaxAnnual        decimal.Decimal

	// Cesantia is employer-funded only and never deducted from wages.
	CesantiaAnnual decimal.Decimal

	OvertimeMultiplier decimal.Decimal
}

// CuracaoRates2026 are the official SVB and Inspectie der Belastingen figures
// for 2026.
func CuracaoRates2026() CuracaoRates {
	return CuracaoRates{
		TaxBrackets: []Bracket{
			{Lower: dec("0"), Upper: dec("2116.67"), Rate: dec("0.0975")},
			{Lower: dec("2116.67"), Upper: dec("2841.67"), Rate: dec("0.15")},
			{Lower: dec("2841.67"), Upper: dec("3783.33"), Rate: dec("0.23")},
			{Lower: dec("3783.33"), Upper: dec("5675"), Rate: dec("0.30")},
			{Lower: dec("5675"), Upper: dec("8041.67"), Rate: dec("0.375")},
			{Lower: dec("8041.67"), Upper: dec("11825"), Rate: dec("0.465")},
			{Lower: dec("11825"), Upper: dec("999999999"), Rate: dec("0.465")},
		},

		BasicTaxCredit:       dec("2915"),
		FixedAnnualDeduction: dec("500"),

		AOVEmployeeRate: dec("0.065"),
		AOVMaxAnnual:    dec("100000"),

		KortingBase:       dec("9340"),
		KortingPercentage: dec("0.338"),
		KortingRate:       dec("0.065"),
		KortingMaxIncome:  dec("27633"),

		BVZEmployeeRate:    dec("0.043"),
		BVZMaxAnnual:       dec("150000"),
		BVZExemptionAnnual: dec("12000"),
		BVZGlidingScale: []GlidingBand{
			{From: dec("12000"), To: dec("13200"), Discount: dec("0.038")},
			{From: dec("13200"), To: dec("14400"), Discount: dec("0.028")},
			{From: dec("14400"), To: dec("15600"), Discount: dec("0.019")},
			{From: dec("15600"), To: dec("16800"), Discount: dec("0.011")},
			{From: dec("16800"), To: dec("18000"), Discount: dec("0.006")},
		},
		BVZGlidingScaleFrom: dec("12000"),
		BVZGlidingScaleTo:   dec("18000"),

		AVBZEmployeeRate:     dec("0.015"),
		AVBZReducedRate:      dec("0.005"),
		AVBZReducedThreshold: dec("22789"),
		AVBZMaxAnnual:        dec("606247.08"),

		CesantiaAnnual: dec("40"),

		OvertimeMultiplier: dec("1.5"),
	}
}

// StMaartenRates holds the St. Maarten figures for one effective period.
type StMaartenRates struct {
	TaxBrackets        []Bracket
	SocialSecurityRate decimal.Decimal
	SocialSecurityMax  decimal.Decimal
	OvertimeMultiplier decimal.Decimal
}

func StMaartenRates2026() StMaartenRates {
	return StMaartenRates{
		TaxBrackets: []Bracket{
			{Lower: dec("0"), Upper: dec("2500"), Rate: dec("0.10")},
			{Lower: dec("2500"), Upper: dec("5000"), Rate: dec("0.25")},
			{Lower: dec("5000"), Upper: dec("999999999"), Rate: dec("0.45")},
		},
		SocialSecurityRate: dec("0.065"),
		SocialSecurityMax:  dec("4500"),
		OvertimeMultiplier: dec("1.5"),
	}
}

// BracketRates holds the figures for jurisdictions whose wage tax is plain
// progressive brackets with no statutory contributions (Aruba, Bonaire).
type BracketRates struct {
	TaxBrackets        []Bracket
	OvertimeMultiplier decimal.Decimal
}

func ArubaRates2026() BracketRates {
	return BracketRates{
		TaxBrackets: []Bracket{
			{Lower: dec("0"), Upper: dec("3000"), Rate: dec("0.12")},
			{Lower: dec("3000"), Upper: dec("999999999"), Rate: dec("0.45")},
		},
		OvertimeMultiplier: dec("1.5"),
	}
}

func BonaireRates2026() BracketRates {
	return BracketRates{
		TaxBrackets: []Bracket{
			{Lower: dec("0"), Upper: dec("2800"), Rate: dec("0.15")},
			{Lower: dec("2800"), Upper: dec("999999999"), Rate: dec("0.40")},
		},
		OvertimeMultiplier: dec("1.5"),
	}
}

// Rate resolvers pick the statutory figures effective for a period start.
// The fixed resolvers below serve a single rate set regardless of period;
// multi-year deployments register one entry per effective year.

type CuracaoRateResolver func(periodStart time.Time) CuracaoRates

type StMaartenRateResolver func(periodStart time.Time) StMaartenRates

type BracketRateResolver func(periodStart time.Time) BracketRates

func FixedCuracaoRates(rates CuracaoRates) CuracaoRateResolver {
	return func(time.Time) CuracaoRates { return rates }
}

func FixedStMaartenRates(rates StMaartenRates) StMaartenRateResolver {
	return func(time.Time) StMaartenRates { return rates }
}

func FixedBracketRates(rates BracketRates) BracketRateResolver {
	return func(time.Time) BracketRates { return rates }
}

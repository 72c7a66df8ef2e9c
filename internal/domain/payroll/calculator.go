package payroll

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Calculator implements the four calculation stages for one jurisdiction.
// The engine invokes the stages in declaration order; each stage may append
// line items, notes, and warnings to the run.
type Calculator interface {
	Jurisdiction() string
	Name() string
	ComputeGross(run *Run, emp EmployeeInput) decimal.Decimal
	ComputeTax(ctx context.Context, run *Run, emp EmployeeInput, gross decimal.Decimal) decimal.Decimal
	ComputeSocialContributions(run *Run, emp EmployeeInput, gross decimal.Decimal) map[string]decimal.Decimal
	ComputeOtherDeductions(run *Run, emp EmployeeInput) decimal.Decimal
}

// Engine routes employees to jurisdiction calculators and drives the
// calculation pipeline. It holds no per-run state; concurrent Calculate
// calls are independent.
type Engine struct {
	calculators map[string]Calculator
}

func NewEngine(calculators ...Calculator) *Engine {
	byCode := make(map[string]Calculator, len(calculators))
	for _, c := range calculators {
		byCode[strings.ToLower(c.Jurisdiction())] = c
	}
	return &Engine{calculators: byCode}
}

// Calculator returns the calculator registered for a jurisdiction code.
func (e *Engine) Calculator(code string) (Calculator, bool) {
	c, ok := e.calculators[strings.ToLower(code)]
	return c, ok
}

// Jurisdictions lists registered jurisdiction codes, sorted.
func (e *Engine) Jurisdictions() []string {
	codes := make([]string, 0, len(e.calculators))
	for code := range e.calculators {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Calculate runs the four-stage pipeline for one employee and assembles the
// itemized result. A panic inside a stage fails only this calculation, so
// batch callers can isolate per-employee failures.
func (e *Engine) Calculate(ctx context.Context, emp EmployeeInput) (result *CalculationResult, err error) {
	calc, ok := e.Calculator(emp.Jurisdiction)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownJurisdiction, emp.Jurisdiction)
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("calculation failed for employee %s: %v", emp.EmployeeID, rec)
		}
	}()

	run := newRun()

	gross := calc.ComputeGross(run, emp)
	tax := calc.ComputeTax(ctx, run, emp, gross)
	contributions := calc.ComputeSocialContributions(run, emp, gross)
	other := calc.ComputeOtherDeductions(run, emp)

	deductionsTotal := tax.Add(other)
	for _, amount := range contributions {
		deductionsTotal = deductionsTotal.Add(amount)
	}

	net := payableGross(emp).Sub(deductionsTotal)

	items := run.Ledger.Items()
	earnings := make(map[string]decimal.Decimal)
	statutory := make(map[string]decimal.Decimal)
	otherDeductions := make(map[string]decimal.Decimal)
	for _, item := range items {
		switch {
		case item.Category == CategoryEarning:
			earnings[item.Code] = item.Amount
		case statutoryCodes[item.Code]:
			statutory[item.Code] = item.Amount
		default:
			otherDeductions[item.Code] = item.Amount
		}
	}

	return &CalculationResult{
		EmployeeID:          emp.EmployeeID,
		Jurisdiction:        strings.ToLower(emp.Jurisdiction),
		PeriodStart:         emp.PeriodStart,
		PeriodEnd:           emp.PeriodEnd,
		GrossTotal:          gross,
		DeductionsTotal:     deductionsTotal,
		NetSalary:           net,
		LineItems:           items,
		Earnings:            earnings,
		StatutoryDeductions: statutory,
		OtherDeductions:     otherDeductions,
		CalculationDate:     time.Now().UTC(),
		CalculationNotes:    run.notes,
		Warnings:            run.warnings,
	}, nil
}

// payableGross is the amount actually disbursed before deductions: base
// salary plus cash allowances. Non-cash allowances (loon in natura, e.g. a
// phone benefit) are taxable but never paid out.
func payableGross(emp EmployeeInput) decimal.Decimal {
	payable := RoundCurrency(emp.BaseSalary)
	for label, amount := range emp.Allowances {
		if nonCashAllowances[strings.ToLower(label)] {
			continue
		}
		payable = payable.Add(RoundCurrency(amount))
	}
	return payable
}

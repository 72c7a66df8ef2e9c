package payroll

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Shared stage logic reused by every jurisdiction calculator.

var standardMonthlyHours = decimal.NewFromInt(160)

// grossEarnings records base salary, overtime, and allowances, returning the
// sum of the recorded earnings.
func grossEarnings(run *Run, emp EmployeeInput, overtimeMultiplier decimal.Decimal) decimal.Decimal {
	gross := run.Ledger.Record(LineItem{
		Code:     CodeBasic,
		Name:     "Basic Salary",
		Category: CategoryEarning,
		Amount:   emp.BaseSalary,
	})

	if emp.OvertimeHours.IsPositive() {
		hourly := emp.BaseSalary.Div(standardMonthlyHours)
		if emp.HourlyRate != nil {
			hourly = *emp.HourlyRate
		}
		overtimeRate := hourly.Mul(overtimeMultiplier)
		overtimePay := overtimeRate.Mul(emp.OvertimeHours)

		rate := overtimeMultiplier
		base := overtimeRate
		gross = gross.Add(run.Ledger.Record(LineItem{
			Code:       CodeOvertime,
			Name:       "Overtime Pay",
			Category:   CategoryEarning,
			Amount:     overtimePay,
			Rate:       &rate,
			BaseAmount: &base,
			Notes:      fmt.Sprintf("%s hours @ %s/hour", emp.OvertimeHours.String(), overtimeRate.String()),
		}))
	}

	for _, label := range sortedKeys(emp.Allowances) {
		gross = gross.Add(run.Ledger.Record(LineItem{
			Code:     allowancePrefix + strings.ToUpper(label),
			Name:     titleFromLabel(label),
			Category: CategoryEarning,
			Amount:   emp.Allowances[label],
		}))
	}

	return gross
}

// otherDeductions records one deduction line per non-statutory entry and
// returns the sum.
func otherDeductions(run *Run, emp EmployeeInput) decimal.Decimal {
	total := decimal.Zero
	for _, label := range sortedKeys(emp.Deductions) {
		total = total.Add(run.Ledger.Record(LineItem{
			Code:     deductionPrefix + strings.ToUpper(label),
			Name:     titleFromLabel(label),
			Category: CategoryDeduction,
			Amount:   emp.Deductions[label],
		}))
	}
	return total
}

// taxShortCircuit handles the exemption and manual-override paths shared by
// all jurisdictions. Returns handled=false when the standard formula applies.
func taxShortCircuit(run *Run, emp EmployeeInput, gross decimal.Decimal, taxName string) (decimal.Decimal, bool) {
	if emp.TaxExempt {
		run.Warn("Employee is tax exempt")
		amount := run.Ledger.Record(LineItem{
			Code:     CodeTax,
			Name:     taxName + " (Exempt)",
			Category: CategoryDeduction,
			Amount:   decimal.Zero,
			Notes:    "Tax exempt status",
		})
		return amount, true
	}

	if emp.TaxPercentage != nil {
		rate := emp.TaxPercentage.Div(oneHundred)
		base := gross
		amount := run.Ledger.Record(LineItem{
			Code:       CodeTax,
			Name:       taxName,
			Category:   CategoryDeduction,
			Amount:     gross.Mul(rate),
			Rate:       &rate,
			BaseAmount: &base,
			Notes:      fmt.Sprintf("Custom rate: %s%%", emp.TaxPercentage.String()),
		})
		return amount, true
	}

	return decimal.Zero, false
}

// Maps carry no order, so derived line items are recorded in sorted label
// order to keep reruns byte-identical.
func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func titleFromLabel(label string) string {
	words := strings.Split(strings.ReplaceAll(label, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

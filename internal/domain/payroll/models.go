package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeInput is one employee's payroll inputs for a single period. The
// engine assumes it already passed caller-side validation: base salary is
// positive and every monetary map value is non-negative.
type EmployeeInput struct {
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	Jurisdiction string `json:"jurisdiction"`

	BaseSalary decimal.Decimal  `json:"gross_salary"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`

	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	// RegularHours is accepted for wire compatibility with upstream HR
	// systems; the overtime rate derives from BaseSalary over a fixed
	// 160-hour month, not from this field.
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`

	Allowances map[string]decimal.Decimal `json:"allowances,omitempty"`
	Deductions map[string]decimal.Decimal `json:"deductions,omitempty"`

	TaxExempt     bool             `json:"tax_exempt"`
	TaxPercentage *decimal.Decimal `json:"tax_percentage,omitempty"`
	// Dependents and AWWExempt are carried for wire compatibility; no
	// current jurisdiction formula reads them. AOV and AWW are levied as
	// one combined premium, so AOVExempt governs both.
	Dependents int  `json:"dependents"`
	AOVExempt  bool `json:"aov_exempt"`
	AWWExempt  bool `json:"aww_exempt"`
}

// LineItem is one computed fact in a calculation run. Items are write-once; a
// negative amount in a DEDUCTION category is a credit reducing deductions.
type LineItem struct {
	Code       string           `json:"code"`
	Name       string           `json:"name"`
	Category   string           `json:"category"`
	Amount     decimal.Decimal  `json:"amount"`
	Rate       *decimal.Decimal `json:"rate,omitempty"`
	BaseAmount *decimal.Decimal `json:"base_amount,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

// CalculationResult is the immutable outcome of one calculation run.
type CalculationResult struct {
	EmployeeID   string    `json:"employee_id"`
	Jurisdiction string    `json:"jurisdiction"`
	PeriodStart  time.Time `json:"period_start"`
	PeriodEnd    time.Time `json:"period_end"`

	GrossTotal      decimal.Decimal `json:"gross_total"`
	DeductionsTotal decimal.Decimal `json:"deductions_total"`
	NetSalary       decimal.Decimal `json:"net_salary"`

	LineItems []LineItem `json:"line_items"`

	Earnings            map[string]decimal.Decimal `json:"earnings"`
	StatutoryDeductions map[string]decimal.Decimal `json:"statutory_deductions"`
	OtherDeductions     map[string]decimal.Decimal `json:"other_deductions"`

	CalculationDate  time.Time `json:"calculation_date"`
	CalculationNotes []string  `json:"calculation_notes"`
	Warnings         []string  `json:"warnings"`
}

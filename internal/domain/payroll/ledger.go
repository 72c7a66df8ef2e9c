package payroll

import "github.com/shopspring/decimal"

// Ledger accumulates line items for a single calculation run, in append
// order. Amounts are rounded once, at record time. A Ledger is owned by one
// run and must not be shared between concurrent calculations.
type Ledger struct {
	items []LineItem
}

// Record rounds the item's amount to currency precision, appends it, and
// returns the rounded amount. Stage totals are built from the returned values
// so that every total reconciles exactly with the recorded lines.
func (l *Ledger) Record(item LineItem) decimal.Decimal {
	item.Amount = RoundCurrency(item.Amount)
	l.items = append(l.items, item)
	return item.Amount
}

// Items returns a snapshot of the ledger in append order.
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Run is the per-call accumulator for one calculation: the line ledger plus
// free-text notes and non-fatal warnings. A fresh Run is created for every
// Calculate call, so concurrent calculations never share state.
type Run struct {
	Ledger   Ledger
	notes    []string
	warnings []string
}

func newRun() *Run {
	return &Run{}
}

func (r *Run) Note(note string) {
	r.notes = append(r.notes, note)
}

func (r *Run) Warn(warning string) {
	r.warnings = append(r.warnings, warning)
}

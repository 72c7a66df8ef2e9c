package payroll

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
)

// TableRow is one row of an official monthly tax table: the pre-computed
// gross tax for incomes in [Min, Max).
type TableRow struct {
	Min decimal.Decimal
	Max decimal.Decimal
	Tax decimal.Decimal
}

// TableSource supplies the rows of a tax table for one jurisdiction and
// period, e.g. from a CSV file or a database.
type TableSource interface {
	Load(ctx context.Context) ([]TableRow, error)
}

// TableProvider serves gross-tax lookups from a TableSource, loading the
// table at most once per process. A failed load is cached as "not available"
// and callers fall back to progressive brackets; it is never a calculation
// error.
type TableProvider struct {
	source TableSource

	once sync.Once
	rows []TableRow
	err  error
}

func NewTableProvider(source TableSource) *TableProvider {
	return &TableProvider{source: source}
}

// Lookup returns the gross tax for the monthly taxable base, or ok=false
// when no table is available. A base beyond the last row's range yields the
// last row's tax.
func (p *TableProvider) Lookup(ctx context.Context, base decimal.Decimal) (decimal.Decimal, bool) {
	if p == nil || p.source == nil {
		return decimal.Zero, false
	}

	p.once.Do(func() {
		p.rows, p.err = p.source.Load(ctx)
		if p.err != nil {
			slog.Warn("tax table unavailable, using bracket fallback", "err", p.err)
		}
	})

	if p.err != nil || len(p.rows) == 0 {
		return decimal.Zero, false
	}

	for _, row := range p.rows {
		if base.GreaterThanOrEqual(row.Min) && base.LessThan(row.Max) {
			return row.Tax, true
		}
	}
	return p.rows[len(p.rows)-1].Tax, true
}

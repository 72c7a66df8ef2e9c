// Package ratestore loads official tax tables from Postgres, keyed by
// jurisdiction and year. It is one TableSource implementation; deployments
// without a database use the CSV source instead.
package ratestore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"caribpay/internal/domain/payroll"
)

const schema = `
CREATE TABLE IF NOT EXISTS tax_tables (
  jurisdiction TEXT NOT NULL,
  year INT NOT NULL,
  min_income NUMERIC(12,2) NOT NULL,
  max_income NUMERIC(12,2) NOT NULL,
  gross_tax NUMERIC(12,2) NOT NULL,
  PRIMARY KEY (jurisdiction, year, min_income)
)`

// EnsureSchema creates the tax table storage if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}

// Store is a payroll.TableSource backed by the tax_tables relation.
type Store struct {
	pool         *pgxpool.Pool
	jurisdiction string
	year         int
}

func New(pool *pgxpool.Pool, jurisdiction string, year int) *Store {
	return &Store{pool: pool, jurisdiction: jurisdiction, year: year}
}

func (s *Store) Load(ctx context.Context) ([]payroll.TableRow, error) {
	rows, err := s.pool.Query(ctx, `
    SELECT min_income::text, max_income::text, gross_tax::text
    FROM tax_tables
    WHERE jurisdiction = $1 AND year = $2
    ORDER BY min_income
  `, s.jurisdiction, s.year)
	if err != nil {
		return nil, fmt.Errorf("query tax table: %w", err)
	}
	defer rows.Close()

	var table []payroll.TableRow
	for rows.Next() {
		var minRaw, maxRaw, taxRaw string
		if err := rows.Scan(&minRaw, &maxRaw, &taxRaw); err != nil {
			return nil, fmt.Errorf("scan tax table row: %w", err)
		}
		row, err := parseRow(minRaw, maxRaw, taxRaw)
		if err != nil {
			return nil, err
		}
		table = append(table, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tax table: %w", err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("no tax table for %s/%d", s.jurisdiction, s.year)
	}
	return table, nil
}

func parseRow(minRaw, maxRaw, taxRaw string) (payroll.TableRow, error) {
	min, err := decimal.NewFromString(minRaw)
	if err != nil {
		return payroll.TableRow{}, fmt.Errorf("bad min_income %q: %w", minRaw, err)
	}
	max, err := decimal.NewFromString(maxRaw)
	if err != nil {
		return payroll.TableRow{}, fmt.Errorf("bad max_income %q: %w", maxRaw, err)
	}
	tax, err := decimal.NewFromString(taxRaw)
	if err != nil {
		return payroll.TableRow{}, fmt.Errorf("bad gross_tax %q: %w", taxRaw, err)
	}
	return payroll.TableRow{Min: min, Max: max, Tax: tax}, nil
}

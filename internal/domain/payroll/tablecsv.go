package payroll

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// CSVTableSource reads a monthly tax table from a CSV file with a header row
// followed by min,max,tax rows. An empty max means the row is open-ended.
type CSVTableSource struct {
	Path string
}

func (s CSVTableSource) Load(ctx context.Context) ([]TableRow, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open tax table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read tax table: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("tax table %s has no data rows", s.Path)
	}

	rows := make([]TableRow, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 3 || record[0] == "" || record[2] == "" {
			continue
		}
		min, err := decimal.NewFromString(record[0])
		if err != nil {
			return nil, fmt.Errorf("tax table row %d: bad min %q", i+2, record[0])
		}
		max := dec("999999")
		if record[1] != "" {
			max, err = decimal.NewFromString(record[1])
			if err != nil {
				return nil, fmt.Errorf("tax table row %d: bad max %q", i+2, record[1])
			}
		}
		tax, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("tax table row %d: bad tax %q", i+2, record[2])
		}
		rows = append(rows, TableRow{Min: min, Max: max, Tax: tax})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("tax table %s has no usable rows", s.Path)
	}
	return rows, nil
}

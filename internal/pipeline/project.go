package pipeline

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// SchemaError reports required columns missing from an input table.
type SchemaError struct {
	Missing   []string
	Available []string
}

// Error implements the error interface. The message names every missing
// column so the caller can fix the export in one pass.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s (available: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
}

// Project restricts a raw table to the seven required columns in canonical
// order, dropping everything else. Projecting an already-projected table is
// a no-op. Returns *SchemaError when any required column is absent.
func Project(t RawTable) (RawTable, error) {
	index := make(map[string]int, len(t.Columns))
	for i, name := range t.Columns {
		index[strings.TrimSpace(name)] = i
	}

	required := RequiredColumns()
	var missing []string
	for _, name := range required {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return RawTable{}, &SchemaError{Missing: missing, Available: t.Columns}
	}

	out := RawTable{
		Columns: required,
		Rows:    make([][]string, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		cells := make([]string, len(required))
		for j, name := range required {
			if src := index[name]; src < len(row) {
				cells[j] = row[src]
			}
		}
		out.Rows = append(out.Rows, cells)
	}
	return out, nil
}

// Decode binds a projected table to typed records. Numeric cells that fail
// to parse are coerced to zero and counted, keeping the pipeline total over
// dirty exports; the caller logs the count once per run.
func Decode(t RawTable, logger *slog.Logger) ([]Record, int) {
	if logger == nil {
		logger = slog.Default()
	}

	coerced := 0
	parseAmount := func(row int, column string) float64 {
		cell := strings.TrimSpace(t.Cell(row, column))
		if cell == "" {
			return 0
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
		if err != nil {
			coerced++
			logger.Warn("coerced malformed numeric cell to zero",
				slog.Int("row", row),
				slog.String("column", column),
				slog.String("value", cell))
			return 0
		}
		return v
	}

	records := make([]Record, 0, len(t.Rows))
	for i := range t.Rows {
		records = append(records, Record{
			Relationships: t.Cell(i, ColRelationships),
			TrunkGroup:    t.Cell(i, ColTrunkGroup),
			Destination:   t.Cell(i, ColDestination),
			Vendor:        t.Cell(i, ColVendor),
			Revenue:       parseAmount(i, ColRevenue),
			Cost:          parseAmount(i, ColCost),
			Profit:        parseAmount(i, ColProfit),
		})
	}
	return records, coerced
}

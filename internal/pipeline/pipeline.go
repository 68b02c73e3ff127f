package pipeline

import (
	"context"
	"fmt"
	"log/slog"
)

// Run executes the full transformation on a raw input table. The only error
// condition is a schema mismatch from projection; a table that filters down
// to zero rows yields an empty Result, not an error, so the caller can still
// emit a header-only artifact.
func Run(ctx context.Context, cfg Config, logger *slog.Logger, input RawTable) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()

	projected, err := Project(input)
	if err != nil {
		return nil, fmt.Errorf("project input table: %w", err)
	}

	records, coerced := Decode(projected, logger)
	filtered := Filter(records)
	adjusted := Adjust(filtered, cfg.VendorMarkers)

	adjustedCount := 0
	for _, r := range adjusted {
		if r.Adjusted {
			adjustedCount++
		}
	}

	rows := GroupAndTotal(adjusted, cfg.GroupKey, cfg.BlankRows)

	groups := 0
	for _, row := range rows {
		if row.Kind == RowTotals {
			groups++
		}
	}

	summary := Summary{
		InputRows:    len(input.Rows),
		FilteredRows: len(filtered),
		AdjustedRows: adjustedCount,
		CoercedCells: coerced,
		Groups:       groups,
		OutputRows:   len(rows),
	}

	if len(filtered) == 0 {
		logger.WarnContext(ctx, "no rows remaining after filtering, emitting header-only output",
			slog.Int("input_rows", summary.InputRows))
	} else {
		logger.InfoContext(ctx, "pipeline run complete",
			slog.Int("input_rows", summary.InputRows),
			slog.Int("filtered_rows", summary.FilteredRows),
			slog.Int("adjusted_rows", summary.AdjustedRows),
			slog.Int("coerced_cells", summary.CoercedCells),
			slog.Int("groups", summary.Groups),
			slog.Int("output_rows", summary.OutputRows))
	}

	return &Result{Rows: rows, Summary: summary}, nil
}

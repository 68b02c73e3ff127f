package exporter

import (
	"fmt"

	"trunkreport/internal/pipeline"
)

// formatAmount formats a monetary value with exactly 2 decimal places so
// values like 13.4 appear as 13.40 in the artifact.
func formatAmount(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// Preview renders the header plus at most limit output rows as string
// cells, for showing the shape of a fresh artifact without a download.
func Preview(result *pipeline.Result, limit int) [][]string {
	rows := result.Rows
	if len(rows) > limit {
		rows = rows[:limit]
	}
	preview := make([][]string, 0, len(rows)+1)
	preview = append(preview, pipeline.RequiredColumns())
	for _, row := range rows {
		preview = append(preview, rowCells(row))
	}
	return preview
}

// rowCells renders one output row as string cells in canonical column
// order. Blank rows render as all-empty cells.
func rowCells(row pipeline.Row) []string {
	if row.Kind == pipeline.RowBlank {
		return make([]string, len(pipeline.RequiredColumns()))
	}
	r := row.Record
	return []string{
		r.Relationships,
		r.TrunkGroup,
		r.Destination,
		r.Vendor,
		formatAmount(r.Revenue),
		formatAmount(r.Cost),
		formatAmount(r.Profit),
	}
}

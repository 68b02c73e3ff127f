package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"trunkreport/internal/pipeline"
)

const sheetName = "Report"

// WriteWorkbook serializes a pipeline result as a single-sheet XLSX
// workbook. Totals rows keep their numeric cells typed so spreadsheet
// formulas keep working on the artifact.
func WriteWorkbook(w io.Writer, result *pipeline.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, 0, len(pipeline.RequiredColumns()))
	for _, name := range pipeline.RequiredColumns() {
		header = append(header, name)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range result.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell address for row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheetName, cell, workbookCells(row)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func workbookCells(row pipeline.Row) *[]interface{} {
	if row.Kind == pipeline.RowBlank {
		cells := make([]interface{}, len(pipeline.RequiredColumns()))
		for i := range cells {
			cells[i] = ""
		}
		return &cells
	}
	r := row.Record
	cells := []interface{}{
		r.Relationships,
		r.TrunkGroup,
		r.Destination,
		r.Vendor,
		r.Revenue,
		r.Cost,
		r.Profit,
	}
	return &cells
}

package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"trunkreport/internal/pipeline"
)

// ReadWorkbook decodes the first sheet of an XLSX stream into a raw table.
// The first non-empty row is taken as the header.
func ReadWorkbook(r io.Reader) (pipeline.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return pipeline.RawTable{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return pipeline.RawTable{}, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return pipeline.RawTable{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	headerIdx := -1
	for i, row := range rows {
		if !rowIsEmpty(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return pipeline.RawTable{}, fmt.Errorf("empty input: no header row")
	}

	columns := make([]string, len(rows[headerIdx]))
	for i, name := range rows[headerIdx] {
		columns[i] = strings.TrimSpace(name)
	}

	table := pipeline.RawTable{Columns: columns}
	for _, row := range rows[headerIdx+1:] {
		if rowIsEmpty(row) {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func rowIsEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

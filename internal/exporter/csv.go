package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"trunkreport/internal/pipeline"
)

// WriteCSV serializes a pipeline result to w: header, then every output
// row. A UTF-8 BOM is written first so Excel recognizes the encoding.
func WriteCSV(w io.Writer, result *pipeline.Result) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(pipeline.RequiredColumns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range result.Rows {
		if err := writer.Write(rowCells(row)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

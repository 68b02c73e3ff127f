package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"trunkreport/internal/pipeline"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV decodes a CSV stream into a raw table. The first row is the
// header; header cells are trimmed because customer exports routinely pad
// them. Rows may have fewer or more fields than the header.
func ReadCSV(r io.Reader) (pipeline.RawTable, error) {
	br := bufio.NewReader(r)

	// Strip the UTF-8 BOM Excel prepends to CSV exports.
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == string(utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return pipeline.RawTable{}, fmt.Errorf("discard BOM: %w", err)
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = false

	header, err := reader.Read()
	if err == io.EOF {
		return pipeline.RawTable{}, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return pipeline.RawTable{}, fmt.Errorf("read header row: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	table := pipeline.RawTable{Columns: columns}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return pipeline.RawTable{}, fmt.Errorf("read data row %d: %w", len(table.Rows)+2, err)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

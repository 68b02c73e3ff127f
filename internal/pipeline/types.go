package pipeline

// Canonical column names of the output table, in output order.
const (
	ColRelationships = "Customer Relationships"
	ColTrunkGroup    = "Trunk Group"
	ColDestination   = "Country Destination"
	ColVendor        = "Vendor"
	ColRevenue       = "Revenue"
	ColCost          = "Cost"
	ColProfit        = "Profit"
)

// RequiredColumns is the fixed projection applied to every input table.
// Input files may carry extra telemetry columns; those are dropped.
func RequiredColumns() []string {
	return []string{
		ColRelationships,
		ColTrunkGroup,
		ColDestination,
		ColVendor,
		ColRevenue,
		ColCost,
		ColProfit,
	}
}

// RawTable is an input table as decoded from a CSV or XLSX file: an ordered
// header plus string cell rows. Rows may be ragged; missing cells read as "".
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// Cell returns the value of the named column in row i, or "" when the column
// is absent or the row is short.
func (t RawTable) Cell(i int, column string) string {
	for j, name := range t.Columns {
		if name == column {
			if j < len(t.Rows[i]) {
				return t.Rows[i][j]
			}
			return ""
		}
	}
	return ""
}

// Record is one typed row of the working table.
type Record struct {
	Relationships string
	TrunkGroup    string
	Destination   string
	Vendor        string
	Revenue       float64
	Cost          float64
	Profit        float64

	// Adjusted marks records whose Cost and Profit were zeroed by the
	// vendor adjustment stage. Totals for Cost and Profit exclude them.
	Adjusted bool
}

// Field returns the record's value for the named text column. Used to
// resolve the configurable group key.
func (r Record) Field(column string) string {
	switch column {
	case ColRelationships:
		return r.Relationships
	case ColTrunkGroup:
		return r.TrunkGroup
	case ColDestination:
		return r.Destination
	case ColVendor:
		return r.Vendor
	}
	return ""
}

// RowKind discriminates the three row shapes of the output table.
type RowKind int

const (
	RowData RowKind = iota
	RowTotals
	RowBlank
)

// Row is one output row: a data record, a synthetic totals record, or a
// blank separator.
type Row struct {
	Kind   RowKind
	Record Record
}

// Config carries the fixed transformation constants. It is immutable once
// passed to Run; callers wanting different markers or spacing build a new
// value.
type Config struct {
	// VendorMarkers are matched case-insensitively as substrings of the
	// Vendor field. A nil slice means the default markers; an empty
	// non-nil slice disables adjustment.
	VendorMarkers []string
	// BlankRows is the number of empty separator rows between group
	// blocks. Zero means no separators.
	BlankRows int
	// GroupKey is the column whose value partitions rows into blocks.
	GroupKey string
}

// withDefaults fills unset fields without touching the ones the caller
// chose.
func (c Config) withDefaults() Config {
	if c.VendorMarkers == nil {
		c.VendorMarkers = DefaultConfig().VendorMarkers
	}
	if c.GroupKey == "" {
		c.GroupKey = ColTrunkGroup
	}
	return c
}

// DefaultConfig returns the production constants: OPS/IVG markers, five
// blank separator rows, grouping on Trunk Group.
func DefaultConfig() Config {
	return Config{
		VendorMarkers: []string{"OPS", "IVG"},
		BlankRows:     5,
		GroupKey:      ColTrunkGroup,
	}
}

// Summary reports what one pipeline run did.
type Summary struct {
	InputRows    int `json:"input_rows"`
	FilteredRows int `json:"filtered_rows"`
	AdjustedRows int `json:"adjusted_rows"`
	CoercedCells int `json:"coerced_cells"`
	Groups       int `json:"groups"`
	OutputRows   int `json:"output_rows"`
}

// Result is the outcome of a pipeline run: the output rows (without header)
// plus the run summary. Columns are always RequiredColumns().
type Result struct {
	Rows    []Row
	Summary Summary
}

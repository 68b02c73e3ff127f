package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupAndTotalSingleGroup(t *testing.T) {
	records := []Record{
		{Vendor: "OPS-1", TrunkGroup: "A", Destination: "US", Revenue: 10, Cost: 0, Profit: 0, Adjusted: true},
		{Vendor: "Acme", TrunkGroup: "A", Destination: "US", Revenue: 20, Cost: 8, Profit: 12},
	}

	rows := GroupAndTotal(records, ColTrunkGroup, 5)
	require.Len(t, rows, 3, "two data rows plus totals, no trailing blanks")

	assert.Equal(t, RowData, rows[0].Kind)
	assert.Equal(t, RowData, rows[1].Kind)

	totals := rows[2]
	require.Equal(t, RowTotals, totals.Kind)
	assert.Equal(t, "A", totals.Record.TrunkGroup)
	assert.Empty(t, totals.Record.Vendor)
	assert.Empty(t, totals.Record.Destination)
	assert.Empty(t, totals.Record.Relationships)
	assert.Equal(t, 30.0, totals.Record.Revenue, "revenue totals include adjusted rows")
	assert.Equal(t, 8.0, totals.Record.Cost, "cost totals exclude adjusted rows")
	assert.Equal(t, 12.0, totals.Record.Profit, "profit totals exclude adjusted rows")
}

func TestGroupAndTotalSeparatorCount(t *testing.T) {
	records := []Record{
		{Vendor: "Acme", TrunkGroup: "A", Destination: "US", Revenue: 1},
		{Vendor: "Beta", TrunkGroup: "B", Destination: "UK", Revenue: 2},
		{Vendor: "Gamma", TrunkGroup: "C", Destination: "DE", Revenue: 3},
	}

	rows := GroupAndTotal(records, ColTrunkGroup, 5)

	// Per group: 1 data + 1 totals; 5 blanks between consecutive blocks only.
	require.Len(t, rows, 3*2+2*5)

	blanks := 0
	for _, row := range rows {
		if row.Kind == RowBlank {
			blanks++
		}
	}
	assert.Equal(t, 10, blanks)
	assert.Equal(t, RowTotals, rows[len(rows)-1].Kind, "no trailing blank rows after the last block")

	// Exactly five consecutive blanks after the first totals row.
	for i := 2; i < 7; i++ {
		assert.Equal(t, RowBlank, rows[i].Kind, "row %d should be blank", i)
	}
	assert.Equal(t, RowData, rows[7].Kind)
}

func TestGroupAndTotalFirstSeenOrder(t *testing.T) {
	records := []Record{
		{Vendor: "V1", TrunkGroup: "B", Destination: "US", Revenue: 1},
		{Vendor: "V2", TrunkGroup: "A", Destination: "US", Revenue: 2},
		{Vendor: "V3", TrunkGroup: "B", Destination: "US", Revenue: 3},
		{Vendor: "V4", TrunkGroup: "C", Destination: "US", Revenue: 4},
	}

	rows := GroupAndTotal(records, ColTrunkGroup, 1)

	var totalsOrder []string
	for _, row := range rows {
		if row.Kind == RowTotals {
			totalsOrder = append(totalsOrder, row.Record.TrunkGroup)
		}
	}
	assert.Equal(t, []string{"B", "A", "C"}, totalsOrder)

	// Rows within group B keep input order, a stable partition not a sort.
	assert.Equal(t, "V1", rows[0].Record.Vendor)
	assert.Equal(t, "V3", rows[1].Record.Vendor)

	var totalB float64
	for _, row := range rows {
		if row.Kind == RowTotals && row.Record.TrunkGroup == "B" {
			totalB = row.Record.Revenue
		}
	}
	assert.Equal(t, 4.0, totalB)
}

func TestGroupAndTotalEmptyInput(t *testing.T) {
	rows := GroupAndTotal(nil, ColTrunkGroup, 5)
	assert.Empty(t, rows)
}

func TestGroupAndTotalAlternateGroupKey(t *testing.T) {
	records := []Record{
		{Vendor: "V1", TrunkGroup: "A", Destination: "US", Revenue: 1, Cost: 1, Profit: 0},
		{Vendor: "V2", TrunkGroup: "B", Destination: "US", Revenue: 2, Cost: 1, Profit: 1},
	}

	rows := GroupAndTotal(records, ColDestination, 5)
	require.Len(t, rows, 3)

	totals := rows[2]
	require.Equal(t, RowTotals, totals.Kind)
	assert.Equal(t, "US", totals.Record.Destination)
	assert.Empty(t, totals.Record.TrunkGroup)
	assert.Equal(t, 3.0, totals.Record.Revenue)
}

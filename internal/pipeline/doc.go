// Package pipeline implements the four-stage trunk report transformation:
// column projection, row filtering, vendor adjustment, and grouping with
// per-group totals.
//
// Each stage is a pure function from table to table, so stages can be unit
// tested in isolation and composed by Run:
//
//	Project  - restrict the raw table to the seven required columns
//	Decode   - bind projected cells to typed records, coercing bad numerics
//	Filter   - drop rows with an empty Vendor or Country Destination
//	Adjust   - zero Cost and Profit on rows whose Vendor matches a marker
//	GroupAndTotal - partition by group key, append totals and blank separators
//
// The whole table is held in memory for the duration of one run; there is no
// shared state between runs.
package pipeline

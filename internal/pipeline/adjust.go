package pipeline

import "strings"

// Adjust applies the vendor accounting rule: for records whose Vendor
// contains any of the marker substrings, Cost and Profit are forced to zero
// and Revenue is left untouched. Matching is case-insensitive. The input
// slice is not mutated; length and order are preserved.
func Adjust(records []Record, markers []string) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		if vendorMatches(r.Vendor, markers) {
			r.Cost = 0
			r.Profit = 0
			r.Adjusted = true
		}
		out[i] = r
	}
	return out
}

func vendorMatches(vendor string, markers []string) bool {
	v := strings.ToUpper(vendor)
	for _, m := range markers {
		if m == "" {
			continue
		}
		if strings.Contains(v, strings.ToUpper(m)) {
			return true
		}
	}
	return false
}

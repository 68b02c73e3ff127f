package pipeline

import "strings"

// Filter drops records whose Vendor or Country Destination is empty after
// trimming whitespace. Relative order is preserved; an empty result is
// valid.
func Filter(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.Vendor) == "" {
			continue
		}
		if strings.TrimSpace(r.Destination) == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

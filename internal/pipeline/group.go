package pipeline

// GroupAndTotal partitions records into blocks by the group key, preserving
// first-seen group order and within-group row order, then flattens the
// blocks into output rows. Each block is followed by one totals row and, for
// every block except the last, blankRows empty separator rows.
//
// The totals row repeats the group key, leaves the other text fields blank,
// sums Revenue over every member, and sums Cost and Profit over only the
// members that were not adjusted.
func GroupAndTotal(records []Record, groupKey string, blankRows int) []Row {
	var order []string
	buckets := make(map[string][]Record)
	for _, r := range records {
		key := r.Field(groupKey)
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], r)
	}

	var rows []Row
	for i, key := range order {
		members := buckets[key]
		for _, r := range members {
			rows = append(rows, Row{Kind: RowData, Record: r})
		}

		totals := Record{Revenue: 0}
		switch groupKey {
		case ColRelationships:
			totals.Relationships = key
		case ColDestination:
			totals.Destination = key
		case ColVendor:
			totals.Vendor = key
		default:
			totals.TrunkGroup = key
		}
		for _, r := range members {
			totals.Revenue += r.Revenue
			if !r.Adjusted {
				totals.Cost += r.Cost
				totals.Profit += r.Profit
			}
		}
		rows = append(rows, Row{Kind: RowTotals, Record: totals})

		// No trailing separators after the final block.
		if i < len(order)-1 {
			for b := 0; b < blankRows; b++ {
				rows = append(rows, Row{Kind: RowBlank})
			}
		}
	}
	return rows
}

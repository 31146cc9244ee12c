package equipment

// Statistics is the read-only inventory valuation view, recomputed from a
// single repository snapshot on every call. LowStockItems carries the actual
// records so callers can display them without a second fetch.
type Statistics struct {
	TotalItems      int         `json:"total_items"`
	TotalValue      float64     `json:"total_value"`
	LowStockCount   int         `json:"low_stock_count"`
	OutOfStockCount int         `json:"out_of_stock_count"`
	LowStockItems   []Equipment `json:"low_stock_items"`
}

// ComputeStatistics aggregates the inventory view over one fetched snapshot.
func ComputeStatistics(items []Equipment) Statistics {
	stats := Statistics{LowStockItems: []Equipment{}}
	for _, e := range items {
		stats.TotalItems++
		stats.TotalValue += e.TotalValue()
		if e.Quantity == 0 {
			stats.OutOfStockCount++
		}
		if e.IsLowStock() {
			stats.LowStockCount++
			stats.LowStockItems = append(stats.LowStockItems, e)
		}
	}
	return stats
}

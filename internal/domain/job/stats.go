package job

// Statistics is the read-only job funnel view. It is recomputed from a single
// repository snapshot on every call; nothing here is cached or incremental.
type Statistics struct {
	Total             int     `json:"total"`
	Active            int     `json:"active"`
	Completed         int     `json:"completed"`
	Cancelled         int     `json:"cancelled"`
	TotalRevenue      float64 `json:"total_revenue"`
	PendingRevenue    float64 `json:"pending_revenue"`
	AverageSystemSize float64 `json:"average_system_size"`
	CompletionRate    float64 `json:"completion_rate"`
}

// ComputeStatistics aggregates the funnel over one fetched snapshot.
// TotalRevenue counts completed jobs only; PendingRevenue counts everything
// still in flight. Empty input yields all zeroes, never a division fault.
func ComputeStatistics(jobs []SolarJob) Statistics {
	var stats Statistics
	var sizeSum float64

	for _, j := range jobs {
		stats.Total++
		sizeSum += j.SystemSizeKWP

		switch j.Status {
		case StatusInProgress:
			stats.Active++
			stats.PendingRevenue += j.EstimatedRevenue
		case StatusCompleted:
			stats.Completed++
			stats.TotalRevenue += j.EstimatedRevenue
		case StatusCancelled:
			stats.Cancelled++
		default:
			stats.PendingRevenue += j.EstimatedRevenue
		}
	}

	if stats.Total > 0 {
		stats.AverageSystemSize = sizeSum / float64(stats.Total)
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total)
	}
	return stats
}

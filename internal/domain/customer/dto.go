package customer

type CreateCustomerRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Preference string `json:"contact_preference"`
	Notes      string `json:"notes"`
}

type UpdateCustomerRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Preference *string `json:"contact_preference"`
	Notes      *string `json:"notes"`
}

type TransitionRequest struct {
	LeadStatus string `json:"lead_status" binding:"required"`
}

// ListFilters narrows and orders a customer fetch. All predicates AND together.
type ListFilters struct {
	LeadStatus *LeadStatus `form:"lead_status"`
	Search     string      `form:"search"`
	SortBy     string      `form:"sort_by"`
	SortOrder  string      `form:"sort_order"`
	Limit      int         `form:"limit"`
}

// LeadStats counts customers per pipeline stage.
type LeadStats struct {
	Total    int                `json:"total"`
	ByStatus map[LeadStatus]int `json:"by_status"`
	Won      int                `json:"won"`
	Lost     int                `json:"lost"`
	Open     int                `json:"open"`
}

// ComputeLeadStats aggregates the pipeline view over one fetched snapshot.
func ComputeLeadStats(customers []Customer) LeadStats {
	stats := LeadStats{ByStatus: make(map[LeadStatus]int)}
	for _, c := range customers {
		stats.Total++
		stats.ByStatus[c.LeadStatus]++
		switch {
		case c.LeadStatus == LeadWon:
			stats.Won++
		case c.LeadStatus == LeadLost:
			stats.Lost++
		default:
			stats.Open++
		}
	}
	return stats
}

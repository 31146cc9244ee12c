package job

import "time"

type CreateJobRequest struct {
	CustomerID       *int64     `json:"customer_id"`
	CustomerName     string     `json:"customer_name" binding:"required"`
	CustomerAddress  string     `json:"customer_address"`
	SystemSizeKWP    float64    `json:"system_size_kwp"`
	ScheduledDate    *time.Time `json:"scheduled_date"`
	EstimatedRevenue float64    `json:"estimated_revenue"`
	Notes            string     `json:"notes"`
}

type UpdateJobRequest struct {
	CustomerName     *string    `json:"customer_name"`
	CustomerAddress  *string    `json:"customer_address"`
	SystemSizeKWP    *float64   `json:"system_size_kwp"`
	ScheduledDate    *time.Time `json:"scheduled_date"`
	EstimatedRevenue *float64   `json:"estimated_revenue"`
	Notes            *string    `json:"notes"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListFilters narrows and orders a job fetch. All predicates AND together;
// Search matches customer name, address and notes case-insensitively.
type ListFilters struct {
	Status        *Status    `form:"status"`
	CustomerID    *int64     `form:"customer_id"`
	ScheduledFrom *time.Time `form:"scheduled_from" time_format:"2006-01-02"`
	ScheduledTo   *time.Time `form:"scheduled_to" time_format:"2006-01-02"`
	Search        string     `form:"search"`
	SortBy        string     `form:"sort_by"`
	SortOrder     string     `form:"sort_order"`
	Limit         int        `form:"limit"`
}

package contract

import "time"

type CreateContractRequest struct {
	Title       string  `json:"title" binding:"required"`
	CustomerID  *int64  `json:"customer_id"`
	JobID       *int64  `json:"job_id"`
	TotalAmount float64 `json:"total_amount"`
}

type UpdateContractRequest struct {
	Title       *string  `json:"title"`
	TotalAmount *float64 `json:"total_amount"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

type PaymentRequest struct {
	Amount float64 `json:"amount"`
}

// ListFilters narrows and orders a contract fetch.
// Search matches contract number and title case-insensitively.
type ListFilters struct {
	Status     *Status    `form:"status"`
	CustomerID *int64     `form:"customer_id"`
	JobID      *int64     `form:"job_id"`
	SignedFrom *time.Time `form:"signed_from" time_format:"2006-01-02"`
	SignedTo   *time.Time `form:"signed_to" time_format:"2006-01-02"`
	Search     string     `form:"search"`
	SortBy     string     `form:"sort_by"`
	SortOrder  string     `form:"sort_order"`
	Limit      int        `form:"limit"`
}

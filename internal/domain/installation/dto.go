package installation

import "time"

type CreateInstallationRequest struct {
	JobID         *int64    `json:"job_id"`
	VendorID      *int64    `json:"vendor_id"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
	Crew          string    `json:"crew"`
	Notes         string    `json:"notes"`
}

type UpdateInstallationRequest struct {
	VendorID       *int64     `json:"vendor_id"`
	ScheduledDate  *time.Time `json:"scheduled_date"`
	Crew           *string    `json:"crew"`
	QualityChecked *bool      `json:"quality_checked"`
	Notes          *string    `json:"notes"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

type ProgressRequest struct {
	CompletionPct float64 `json:"completion_pct"`
}

type CompleteRequest struct {
	Notes string `json:"notes"`
}

// ListFilters narrows and orders an installation fetch.
// Search matches crew and notes case-insensitively.
type ListFilters struct {
	Status        *Status    `form:"status"`
	JobID         *int64     `form:"job_id"`
	VendorID      *int64     `form:"vendor_id"`
	ScheduledFrom *time.Time `form:"scheduled_from" time_format:"2006-01-02"`
	ScheduledTo   *time.Time `form:"scheduled_to" time_format:"2006-01-02"`
	Search        string     `form:"search"`
	SortBy        string     `form:"sort_by"`
	SortOrder     string     `form:"sort_order"`
	Limit         int        `form:"limit"`
}

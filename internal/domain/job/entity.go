package job

import (
	"fmt"
	"strings"
	"time"

	xerrors "helios-service/internal/pkg/errors"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusOnHold     Status = "on_hold"
)

// transitions is the allowed-edges table. cancelled and on_hold are reachable
// from every non-terminal state; a job parked on hold resumes into the stage it
// would otherwise occupy. completed and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusApproved, StatusCancelled, StatusOnHold},
	StatusApproved:   {StatusInProgress, StatusCancelled, StatusOnHold},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusOnHold},
	StatusOnHold:     {StatusPending, StatusApproved, StatusInProgress, StatusCancelled},
}

// SolarJob is one installation project. Customer name and address are
// denormalized so the record survives customer edits; CustomerID is the weak
// back-reference and is nil for walk-in quotes.
type SolarJob struct {
	ID               int64      `json:"id" db:"id"`
	CustomerID       *int64     `json:"customer_id" db:"customer_id"`
	CustomerName     string     `json:"customer_name" db:"customer_name"`
	CustomerAddress  string     `json:"customer_address" db:"customer_address"`
	SystemSizeKWP    float64    `json:"system_size_kwp" db:"system_size_kwp"`
	Status           Status     `json:"status" db:"status"`
	ScheduledDate    *time.Time `json:"scheduled_date" db:"scheduled_date"`
	EstimatedRevenue float64    `json:"estimated_revenue" db:"estimated_revenue"`
	Notes            string     `json:"notes" db:"notes"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Transition moves the job to next, validating against the allowed-edges table.
func (j *SolarJob) Transition(next Status) error {
	if !j.Status.CanTransitionTo(next) {
		return fmt.Errorf("job status %s cannot move to %s: %w", j.Status, next, xerrors.ErrConstraint)
	}
	j.Status = next
	j.UpdatedAt = time.Now()
	return nil
}

// ParseStatus normalizes a stored status string into the closed enumeration.
func ParseStatus(raw string) (Status, error) {
	switch normalize(raw) {
	case "pending", "new":
		return StatusPending, nil
	case "approved":
		return StatusApproved, nil
	case "in_progress", "inprogress", "active":
		return StatusInProgress, nil
	case "completed", "complete", "done":
		return StatusCompleted, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	case "on_hold", "onhold", "hold":
		return StatusOnHold, nil
	}
	return "", fmt.Errorf("unknown job status %q: %w", raw, xerrors.ErrInvalidInput)
}

func normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

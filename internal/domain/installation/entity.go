package installation

import (
	"fmt"
	"strings"
	"time"

	xerrors "helios-service/internal/pkg/errors"
)

type Status string

const (
	StatusScheduled         Status = "scheduled"
	StatusConfirmed         Status = "confirmed"
	StatusInProgress        Status = "in_progress"
	StatusCompleted         Status = "completed"
	StatusPostponed         Status = "postponed"
	StatusCancelled         Status = "cancelled"
	StatusOnHold            Status = "on_hold"
	StatusRequiresFollowUp  Status = "requires_follow_up"
)

// transitions is the allowed-edges table. The confirmed step is optional on the
// happy path; postponed, on_hold and requires_follow_up are side-exits that
// re-enter the chain. completed and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusScheduled:        {StatusConfirmed, StatusInProgress, StatusPostponed, StatusCancelled, StatusOnHold, StatusRequiresFollowUp},
	StatusConfirmed:        {StatusInProgress, StatusPostponed, StatusCancelled, StatusOnHold, StatusRequiresFollowUp},
	StatusInProgress:       {StatusCompleted, StatusCancelled, StatusOnHold, StatusRequiresFollowUp},
	StatusPostponed:        {StatusScheduled, StatusConfirmed, StatusCancelled},
	StatusOnHold:           {StatusScheduled, StatusConfirmed, StatusInProgress, StatusCancelled},
	StatusRequiresFollowUp: {StatusInProgress, StatusCompleted, StatusCancelled},
}

// Installation is one crew visit for a job. JobID and VendorID are weak
// back-references; deleting the vendor nulls VendorID rather than touching
// the installation itself.
type Installation struct {
	ID             int64      `json:"id" db:"id"`
	JobID          *int64     `json:"job_id" db:"job_id"`
	VendorID       *int64     `json:"vendor_id" db:"vendor_id"`
	ScheduledDate  time.Time  `json:"scheduled_date" db:"scheduled_date"`
	Status         Status     `json:"status" db:"status"`
	Crew           string     `json:"crew" db:"crew"`
	StartedAt      *time.Time `json:"started_at" db:"started_at"`
	CompletedAt    *time.Time `json:"completed_at" db:"completed_at"`
	CompletionPct  float64    `json:"completion_pct" db:"completion_pct"`
	QualityChecked bool       `json:"quality_checked" db:"quality_checked"`
	Notes          string     `json:"notes" db:"notes"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
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

// Transition moves the installation to next, validating against the
// allowed-edges table.
func (i *Installation) Transition(next Status) error {
	if !i.Status.CanTransitionTo(next) {
		return fmt.Errorf("installation status %s cannot move to %s: %w", i.Status, next, xerrors.ErrConstraint)
	}
	i.Status = next
	i.UpdatedAt = time.Now()
	return nil
}

// Start marks the crew on site: status in_progress, start time stamped.
// Calling it again overwrites the start stamp; callers wanting a guard go
// through Transition instead.
func (i *Installation) Start() {
	now := time.Now()
	i.Status = StatusInProgress
	i.StartedAt = &now
	i.UpdatedAt = now
}

// Complete closes the installation: status completed, end time stamped,
// completion at 100 and the crew's closing notes recorded.
func (i *Installation) Complete(notes string) {
	now := time.Now()
	i.Status = StatusCompleted
	i.CompletedAt = &now
	i.CompletionPct = 100
	if notes != "" {
		i.Notes = notes
	}
	i.UpdatedAt = now
}

// UpdateProgress clamps pct into [0,100]. Hitting 100 while the crew is
// in progress completes the installation implicitly.
func (i *Installation) UpdateProgress(pct float64) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	i.CompletionPct = pct
	i.UpdatedAt = time.Now()
	if pct == 100 && i.Status == StatusInProgress {
		i.Complete("")
	}
}

// ParseStatus normalizes a stored status string into the closed enumeration.
func ParseStatus(raw string) (Status, error) {
	switch normalize(raw) {
	case "scheduled":
		return StatusScheduled, nil
	case "confirmed":
		return StatusConfirmed, nil
	case "in_progress", "inprogress", "started":
		return StatusInProgress, nil
	case "completed", "complete", "done":
		return StatusCompleted, nil
	case "postponed", "rescheduled":
		return StatusPostponed, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	case "on_hold", "onhold", "hold":
		return StatusOnHold, nil
	case "requires_follow_up", "requires_followup", "follow_up", "followup":
		return StatusRequiresFollowUp, nil
	}
	return "", fmt.Errorf("unknown installation status %q: %w", raw, xerrors.ErrInvalidInput)
}

func normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

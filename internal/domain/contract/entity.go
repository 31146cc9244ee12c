package contract

import (
	"fmt"
	"strings"
	"time"

	xerrors "helios-service/internal/pkg/errors"
)

type Status string

const (
	StatusDraft            Status = "draft"
	StatusPendingSignature Status = "pending_signature"
	StatusSigned           Status = "signed"
	StatusActive           Status = "active"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
	StatusOnHold           Status = "on_hold"
)

// transitions is the allowed-edges table for generic status moves. The named
// mutators below have their own (looser) preconditions, matching how the
// paperwork actually flows: a contract can be signed out of band at any point.
var transitions = map[Status][]Status{
	StatusDraft:            {StatusPendingSignature, StatusCancelled, StatusOnHold},
	StatusPendingSignature: {StatusSigned, StatusCancelled, StatusOnHold},
	StatusSigned:           {StatusActive, StatusCancelled, StatusOnHold},
	StatusActive:           {StatusCompleted, StatusCancelled, StatusOnHold},
	StatusOnHold:           {StatusDraft, StatusPendingSignature, StatusSigned, StatusActive, StatusCancelled},
}

// Contract is a signed agreement for one job. PaidAmount never exceeds
// TotalAmount and is monotonically non-decreasing until cancellation.
type Contract struct {
	ID             int64      `json:"id" db:"id"`
	ContractNumber string     `json:"contract_number" db:"contract_number"`
	Title          string     `json:"title" db:"title"`
	CustomerID     *int64     `json:"customer_id" db:"customer_id"`
	JobID          *int64     `json:"job_id" db:"job_id"`
	TotalAmount    float64    `json:"total_amount" db:"total_amount"`
	PaidAmount     float64    `json:"paid_amount" db:"paid_amount"`
	Status         Status     `json:"status" db:"status"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	SignedAt       *time.Time `json:"signed_at" db:"signed_at"`
	StartDate      *time.Time `json:"start_date" db:"start_date"`
	CompletedAt    *time.Time `json:"completed_at" db:"completed_at"`
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

// Transition moves the contract to next, validating against the allowed-edges table.
func (c *Contract) Transition(next Status) error {
	if !c.Status.CanTransitionTo(next) {
		return fmt.Errorf("contract status %s cannot move to %s: %w", c.Status, next, xerrors.ErrConstraint)
	}
	c.Status = next
	c.UpdatedAt = time.Now()
	return nil
}

// Sign stamps the signature date and marks the contract signed. Unconditional.
func (c *Contract) Sign() {
	now := time.Now()
	c.Status = StatusSigned
	c.SignedAt = &now
	c.UpdatedAt = now
}

// Activate starts the engagement. No-op unless the contract is exactly signed.
func (c *Contract) Activate() {
	if c.Status != StatusSigned {
		return
	}
	now := time.Now()
	c.Status = StatusActive
	c.IsActive = true
	c.StartDate = &now
	c.UpdatedAt = now
}

// Complete closes the contract out and stamps the completion date. Unconditional.
func (c *Contract) Complete() {
	now := time.Now()
	c.Status = StatusCompleted
	c.IsActive = false
	c.CompletedAt = &now
	c.UpdatedAt = now
}

// Cancel terminates the contract and clears the active flag. Unconditional.
func (c *Contract) Cancel() {
	c.Status = StatusCancelled
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// AddPayment records a payment, capping the running total at TotalAmount.
// Paying the contract off completes it as a side effect.
func (c *Contract) AddPayment(amount float64) {
	c.PaidAmount += amount
	if c.PaidAmount > c.TotalAmount {
		c.PaidAmount = c.TotalAmount
	}
	c.UpdatedAt = time.Now()
	if c.PaidAmount == c.TotalAmount {
		c.Complete()
	}
}

// RemainingAmount is the outstanding balance.
func (c *Contract) RemainingAmount() float64 {
	return c.TotalAmount - c.PaidAmount
}

// ParseStatus normalizes a stored status string into the closed enumeration.
func ParseStatus(raw string) (Status, error) {
	switch normalize(raw) {
	case "draft":
		return StatusDraft, nil
	case "pending_signature", "pendingsignature", "awaiting_signature":
		return StatusPendingSignature, nil
	case "signed":
		return StatusSigned, nil
	case "active":
		return StatusActive, nil
	case "completed", "complete", "fulfilled":
		return StatusCompleted, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	case "on_hold", "onhold", "hold":
		return StatusOnHold, nil
	}
	return "", fmt.Errorf("unknown contract status %q: %w", raw, xerrors.ErrInvalidInput)
}

func normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

package customer

import (
	"fmt"
	"strings"
	"time"

	xerrors "helios-service/internal/pkg/errors"
)

type LeadStatus string
type ContactPreference string

const (
	LeadNew         LeadStatus = "new_lead"
	LeadContacted   LeadStatus = "contacted"
	LeadQualified   LeadStatus = "qualified"
	LeadProposal    LeadStatus = "proposal"
	LeadNegotiation LeadStatus = "negotiation"
	LeadWon         LeadStatus = "won"
	LeadLost        LeadStatus = "lost"

	ContactByPhone ContactPreference = "phone"
	ContactByEmail ContactPreference = "email"
	ContactBySMS   ContactPreference = "sms"
)

// leadTransitions is the allowed-edges table for the lead pipeline. A dead
// lead can be closed out as lost from any open stage; won requires reaching
// negotiation first. won and lost are terminal.
var leadTransitions = map[LeadStatus][]LeadStatus{
	LeadNew:         {LeadContacted, LeadLost},
	LeadContacted:   {LeadQualified, LeadLost},
	LeadQualified:   {LeadProposal, LeadLost},
	LeadProposal:    {LeadNegotiation, LeadLost},
	LeadNegotiation: {LeadWon, LeadLost},
}

// Customer represents a lead or signed customer of the installation business.
type Customer struct {
	ID         int64             `json:"id" db:"id"`
	Name       string            `json:"name" db:"name"`
	Email      string            `json:"email" db:"email"`
	Phone      string            `json:"phone" db:"phone"`
	Address    string            `json:"address" db:"address"`
	LeadStatus LeadStatus        `json:"lead_status" db:"lead_status"`
	Preference ContactPreference `json:"contact_preference" db:"contact_preference"`
	Notes      string            `json:"notes" db:"notes"`
	CreatedAt  time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at" db:"updated_at"`
}

// CanTransitionTo reports whether the lead pipeline allows moving to next.
func (s LeadStatus) CanTransitionTo(next LeadStatus) bool {
	for _, allowed := range leadTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the lead has reached a final outcome.
func (s LeadStatus) IsTerminal() bool {
	return s == LeadWon || s == LeadLost
}

// Transition advances the lead pipeline, validating against the allowed-edges table.
func (c *Customer) Transition(next LeadStatus) error {
	if !c.LeadStatus.CanTransitionTo(next) {
		return fmt.Errorf("lead status %s cannot move to %s: %w", c.LeadStatus, next, xerrors.ErrConstraint)
	}
	c.LeadStatus = next
	c.UpdatedAt = time.Now()
	return nil
}

// ParseLeadStatus normalizes a stored status string into the closed enumeration.
// Legacy free-text variants ("New Lead", "in-negotiation") are accepted; anything
// unrecognized is an explicit error, never a silent default.
func ParseLeadStatus(raw string) (LeadStatus, error) {
	switch normalize(raw) {
	case "new_lead", "new", "lead":
		return LeadNew, nil
	case "contacted":
		return LeadContacted, nil
	case "qualified":
		return LeadQualified, nil
	case "proposal", "proposal_sent":
		return LeadProposal, nil
	case "negotiation", "in_negotiation", "negotiating":
		return LeadNegotiation, nil
	case "won", "closed_won":
		return LeadWon, nil
	case "lost", "closed_lost":
		return LeadLost, nil
	}
	return "", fmt.Errorf("unknown lead status %q: %w", raw, xerrors.ErrInvalidInput)
}

// ParseContactPreference normalizes a stored contact preference string.
func ParseContactPreference(raw string) (ContactPreference, error) {
	switch normalize(raw) {
	case "phone", "call":
		return ContactByPhone, nil
	case "email", "mail":
		return ContactByEmail, nil
	case "sms", "text":
		return ContactBySMS, nil
	}
	return "", fmt.Errorf("unknown contact preference %q: %w", raw, xerrors.ErrInvalidInput)
}

func normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

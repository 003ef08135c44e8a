package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead types
const (
	LeadTypeInvestor = "investor"
	LeadTypeStudent  = "student"
	LeadTypeTourist  = "tourist"
	LeadTypeWaitlist = "waitlist"
)

// Lead statuses, admin-controlled after creation
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusRejected  = "rejected"
)

// ValidLeadStatuses is the set of statuses an admin may assign to a lead
var ValidLeadStatuses = map[string]bool{
	LeadStatusNew:       true,
	LeadStatusContacted: true,
	LeadStatusQualified: true,
	LeadStatusRejected:  true,
}

// Lead represents a captured expression of interest, the root entity of the
// intake pipeline. user_id is set only when the submitter was authenticated.
type Lead struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty" db:"user_id"`
	LeadType  string     `json:"lead_type" db:"lead_type"`
	Name      string     `json:"name" db:"name"`
	Email     string     `json:"email" db:"email"`
	Phone     NullString `json:"phone,omitempty" db:"phone"`
	Language  string     `json:"language" db:"language"`
	Status    string     `json:"status" db:"status"`
	Source    NullString `json:"source,omitempty" db:"source"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

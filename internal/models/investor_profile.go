package models

import (
	"time"

	"github.com/google/uuid"
)

// Investor types
const (
	InvestorTypeRetail = "retail"
	InvestorTypePro    = "pro"
)

// InvestorProfile is the 1:1 extension of an investor-type lead. The lead owns
// the profile; deleting the lead cascades.
type InvestorProfile struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	LeadID             uuid.UUID  `json:"lead_id" db:"lead_id"`
	Country            string     `json:"country" db:"country"`
	InvestorType       string     `json:"investor_type" db:"investor_type"`
	BudgetRange        string     `json:"budget_range" db:"budget_range"`
	RiskTolerance      string     `json:"risk_tolerance" db:"risk_tolerance"`
	Timeframe          string     `json:"timeframe" db:"timeframe"`
	Notes              NullString `json:"notes,omitempty" db:"notes"`
	PropertyInterestID *uuid.UUID `json:"property_interest_id,omitempty" db:"property_interest_id"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

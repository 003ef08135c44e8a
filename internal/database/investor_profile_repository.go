package database

import (
	"fmt"
	"time"

	"github.com/abitareitalia/leads-backend/internal/models"
	"github.com/google/uuid"
)

// InvestorProfileRepository handles investor profile database operations
type InvestorProfileRepository struct {
	db DB
}

// NewInvestorProfileRepository creates a new investor profile repository
func NewInvestorProfileRepository(db DB) *InvestorProfileRepository {
	return &InvestorProfileRepository{
		db: db,
	}
}

// NewInvestorProfileParams holds the fields for a new investor profile
type NewInvestorProfileParams struct {
	LeadID             uuid.UUID
	Country            string
	InvestorType       string
	BudgetRange        string
	RiskTolerance      string
	Timeframe          string
	Notes              string
	PropertyInterestID *uuid.UUID
}

// CreateInvestorProfile inserts the profile row extending an investor lead
func (r *InvestorProfileRepository) CreateInvestorProfile(params NewInvestorProfileParams) (*models.InvestorProfile, error) {
	profile := &models.InvestorProfile{
		ID:                 uuid.New(),
		LeadID:             params.LeadID,
		Country:            params.Country,
		InvestorType:       params.InvestorType,
		BudgetRange:        params.BudgetRange,
		RiskTolerance:      params.RiskTolerance,
		Timeframe:          params.Timeframe,
		Notes:              models.NewNullString(params.Notes),
		PropertyInterestID: params.PropertyInterestID,
		CreatedAt:          time.Now(),
	}

	query := `
		INSERT INTO investor_profiles (
			id, lead_id, country, investor_type, budget_range,
			risk_tolerance, timeframe, notes, property_interest_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(
		query,
		profile.ID,
		profile.LeadID,
		profile.Country,
		profile.InvestorType,
		profile.BudgetRange,
		profile.RiskTolerance,
		profile.Timeframe,
		profile.Notes,
		profile.PropertyInterestID,
		profile.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create investor profile: %w", err)
	}

	return profile, nil
}

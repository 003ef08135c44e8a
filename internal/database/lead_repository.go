package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/abitareitalia/leads-backend/internal/models"
	"github.com/google/uuid"
)

// LeadRepository handles lead database operations
type LeadRepository struct {
	db DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db DB) *LeadRepository {
	return &LeadRepository{
		db: db,
	}
}

// NewLeadParams holds the caller-supplied fields for a new lead
type NewLeadParams struct {
	UserID   *uuid.UUID
	LeadType string
	Name     string
	Email    string
	Phone    string
	Language string
	Source   string
}

// CreateLead inserts a new lead with status=new
func (r *LeadRepository) CreateLead(params NewLeadParams) (*models.Lead, error) {
	lead := &models.Lead{
		ID:        uuid.New(),
		UserID:    params.UserID,
		LeadType:  params.LeadType,
		Name:      params.Name,
		Email:     params.Email,
		Phone:     models.NewNullString(params.Phone),
		Language:  params.Language,
		Status:    models.LeadStatusNew,
		Source:    models.NewNullString(params.Source),
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO leads (
			id, user_id, lead_type, name, email, phone,
			language, status, source, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(
		query,
		lead.ID,
		lead.UserID,
		lead.LeadType,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Language,
		lead.Status,
		lead.Source,
		lead.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	return lead, nil
}

// GetLeadByID retrieves a lead by its id. Returns nil, nil when not found.
func (r *LeadRepository) GetLeadByID(id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead

	query := `
		SELECT id, user_id, lead_type, name, email, phone,
		       language, status, source, created_at
		FROM leads
		WHERE id = $1
	`

	err := r.db.Get(&lead, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return &lead, nil
}

// FindWaitlistLeadByEmail looks up an existing waitlist lead for the given
// email. Returns nil, nil when none exists. Used for idempotent duplicate
// handling of waitlist submissions.
func (r *LeadRepository) FindWaitlistLeadByEmail(email string) (*models.Lead, error) {
	var lead models.Lead

	query := `
		SELECT id, user_id, lead_type, name, email, phone,
		       language, status, source, created_at
		FROM leads
		WHERE email = $1 AND lead_type = $2
		LIMIT 1
	`

	err := r.db.Get(&lead, query, email, models.LeadTypeWaitlist)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find waitlist lead: %w", err)
	}

	return &lead, nil
}

// UpdateLeadStatus sets the admin-controlled status of a lead
func (r *LeadRepository) UpdateLeadStatus(id uuid.UUID, status string) error {
	if !models.ValidLeadStatuses[status] {
		return fmt.Errorf("invalid lead status: %s", status)
	}

	query := `UPDATE leads SET status = $1 WHERE id = $2`

	result, err := r.db.Exec(query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ListLeads returns leads newest first, optionally filtered by type and status
func (r *LeadRepository) ListLeads(leadType, status string) ([]models.Lead, error) {
	query := `
		SELECT id, user_id, lead_type, name, email, phone,
		       language, status, source, created_at
		FROM leads
		WHERE ($1 = '' OR lead_type = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
	`

	leads := []models.Lead{}
	if err := r.db.Select(&leads, query, leadType, status); err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	return leads, nil
}

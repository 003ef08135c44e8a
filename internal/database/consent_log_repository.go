package database

import (
	"fmt"
	"time"

	"github.com/abitareitalia/leads-backend/internal/models"
	"github.com/google/uuid"
)

// ConsentLogRepository handles consent log database operations. The table is
// append-only: no update or delete operations exist by design.
type ConsentLogRepository struct {
	db DB
}

// NewConsentLogRepository creates a new consent log repository
func NewConsentLogRepository(db DB) *ConsentLogRepository {
	return &ConsentLogRepository{
		db: db,
	}
}

// NewConsentLogParams holds the fields for a new consent row
type NewConsentLogParams struct {
	LeadID        *uuid.UUID
	Email         string
	ConsentType   string
	Version       string
	Language      string
	IPHash        string
	UserAgentHash string
}

// CreateConsentLog appends one consent audit row
func (r *ConsentLogRepository) CreateConsentLog(params NewConsentLogParams) (*models.ConsentLog, error) {
	row := &models.ConsentLog{
		ID:            uuid.New(),
		LeadID:        params.LeadID,
		Email:         params.Email,
		ConsentType:   params.ConsentType,
		Version:       params.Version,
		Language:      params.Language,
		IPHash:        params.IPHash,
		UserAgentHash: params.UserAgentHash,
		CreatedAt:     time.Now(),
	}

	query := `
		INSERT INTO consent_logs (
			id, lead_id, email, consent_type, version,
			language, ip_hash, user_agent_hash, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(
		query,
		row.ID,
		row.LeadID,
		row.Email,
		row.ConsentType,
		row.Version,
		row.Language,
		row.IPHash,
		row.UserAgentHash,
		row.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create consent log: %w", err)
	}

	return row, nil
}

package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/abitareitalia/leads-backend/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// VerificationRepository handles verification database operations
type VerificationRepository struct {
	db DB
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db DB) *VerificationRepository {
	return &VerificationRepository{
		db: db,
	}
}

// NewVerificationParams holds the fields for a new verification record
type NewVerificationParams struct {
	LeadID              uuid.UUID
	VerificationType    string
	FullName            string
	DOB                 string
	Nationality         string
	AddressLine         string
	City                string
	PostalCode          string
	Country             string
	IDDocType           string
	IDDocNumber         string
	IDDocFiles          []string
	ProofOfAddressFiles []string
	ConsentMarketing    bool
}

// CreateVerification inserts a verification record with status=submitted
func (r *VerificationRepository) CreateVerification(params NewVerificationParams) (*models.Verification, error) {
	verification := &models.Verification{
		ID:                  uuid.New(),
		LeadID:              params.LeadID,
		VerificationType:    params.VerificationType,
		FullName:            params.FullName,
		DOB:                 params.DOB,
		Nationality:         params.Nationality,
		AddressLine:         params.AddressLine,
		City:                params.City,
		PostalCode:          params.PostalCode,
		Country:             params.Country,
		IDDocType:           params.IDDocType,
		IDDocNumber:         params.IDDocNumber,
		IDDocFiles:          pq.StringArray(params.IDDocFiles),
		ProofOfAddressFiles: pq.StringArray(params.ProofOfAddressFiles),
		ConsentPrivacy:      true,
		ConsentMarketing:    params.ConsentMarketing,
		Status:              models.VerificationStatusSubmitted,
		CreatedAt:           time.Now(),
	}

	query := `
		INSERT INTO verifications (
			id, lead_id, verification_type, full_name, dob, nationality,
			address_line, city, postal_code, country, id_doc_type,
			id_doc_number, id_doc_files, proof_of_address_files,
			consent_privacy, consent_marketing, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Exec(
		query,
		verification.ID,
		verification.LeadID,
		verification.VerificationType,
		verification.FullName,
		verification.DOB,
		verification.Nationality,
		verification.AddressLine,
		verification.City,
		verification.PostalCode,
		verification.Country,
		verification.IDDocType,
		verification.IDDocNumber,
		verification.IDDocFiles,
		verification.ProofOfAddressFiles,
		verification.ConsentPrivacy,
		verification.ConsentMarketing,
		verification.Status,
		verification.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create verification: %w", err)
	}

	return verification, nil
}

// GetVerificationByID retrieves a verification by its id. Returns nil, nil
// when not found.
func (r *VerificationRepository) GetVerificationByID(id uuid.UUID) (*models.Verification, error) {
	var verification models.Verification

	query := `
		SELECT id, lead_id, verification_type, full_name, dob, nationality,
		       address_line, city, postal_code, country, id_doc_type,
		       id_doc_number, id_doc_files, proof_of_address_files,
		       consent_privacy, consent_marketing, status, admin_notes, created_at
		FROM verifications
		WHERE id = $1
	`

	err := r.db.Get(&verification, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verification: %w", err)
	}

	return &verification, nil
}

// UpdateVerificationStatus sets the review outcome and optional admin notes
func (r *VerificationRepository) UpdateVerificationStatus(id uuid.UUID, status, adminNotes string) error {
	query := `UPDATE verifications SET status = $1, admin_notes = $2 WHERE id = $3`

	result, err := r.db.Exec(query, status, models.NewNullString(adminNotes), id)
	if err != nil {
		return fmt.Errorf("failed to update verification status: %w", err)
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

// ListVerifications returns verifications newest first, optionally filtered
// by status
func (r *VerificationRepository) ListVerifications(status string) ([]models.Verification, error) {
	query := `
		SELECT id, lead_id, verification_type, full_name, dob, nationality,
		       address_line, city, postal_code, country, id_doc_type,
		       id_doc_number, id_doc_files, proof_of_address_files,
		       consent_privacy, consent_marketing, status, admin_notes, created_at
		FROM verifications
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
	`

	verifications := []models.Verification{}
	if err := r.db.Select(&verifications, query, status); err != nil {
		return nil, fmt.Errorf("failed to list verifications: %w", err)
	}

	return verifications, nil
}

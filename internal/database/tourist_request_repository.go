package database

import (
	"fmt"
	"time"

	"github.com/abitareitalia/leads-backend/internal/models"
	"github.com/google/uuid"
)

// TouristRequestRepository handles tourist request database operations
type TouristRequestRepository struct {
	db DB
}

// NewTouristRequestRepository creates a new tourist request repository
func NewTouristRequestRepository(db DB) *TouristRequestRepository {
	return &TouristRequestRepository{
		db: db,
	}
}

// NewTouristRequestParams holds the fields for a new tourist request
type NewTouristRequestParams struct {
	LeadID    uuid.UUID
	ListingID uuid.UUID
	Guests    int
	DateFrom  string
	DateTo    string
	Message   string
}

// CreateTouristRequest inserts the request row extending a tourist lead
func (r *TouristRequestRepository) CreateTouristRequest(params NewTouristRequestParams) (*models.TouristRequest, error) {
	request := &models.TouristRequest{
		ID:        uuid.New(),
		LeadID:    params.LeadID,
		ListingID: params.ListingID,
		Guests:    params.Guests,
		DateFrom:  params.DateFrom,
		DateTo:    params.DateTo,
		Message:   models.NewNullString(params.Message),
		Status:    models.RequestStatusPending,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO tourist_requests (
			id, lead_id, listing_id, guests, date_from, date_to,
			message, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(
		query,
		request.ID,
		request.LeadID,
		request.ListingID,
		request.Guests,
		request.DateFrom,
		request.DateTo,
		request.Message,
		request.Status,
		request.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tourist request: %w", err)
	}

	return request, nil
}

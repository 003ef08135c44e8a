package database

import (
	"fmt"
	"time"

	"github.com/abitareitalia/leads-backend/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// StudentRequestRepository handles student request database operations
type StudentRequestRepository struct {
	db DB
}

// NewStudentRequestRepository creates a new student request repository
func NewStudentRequestRepository(db DB) *StudentRequestRepository {
	return &StudentRequestRepository{
		db: db,
	}
}

// NewStudentRequestParams holds the fields for a new student request
type NewStudentRequestParams struct {
	LeadID         uuid.UUID
	ListingID      uuid.UUID
	RequestType    string
	University     string
	Program        string
	MoveInDate     string
	Budget         float64
	Guarantor      bool
	Message        string
	PreferredDates []string
}

// CreateStudentRequest inserts the request row extending a student lead
func (r *StudentRequestRepository) CreateStudentRequest(params NewStudentRequestParams) (*models.StudentRequest, error) {
	request := &models.StudentRequest{
		ID:             uuid.New(),
		LeadID:         params.LeadID,
		ListingID:      params.ListingID,
		RequestType:    params.RequestType,
		University:     params.University,
		Program:        params.Program,
		MoveInDate:     params.MoveInDate,
		Budget:         params.Budget,
		Guarantor:      params.Guarantor,
		Message:        models.NewNullString(params.Message),
		PreferredDates: pq.StringArray(params.PreferredDates),
		Status:         models.RequestStatusPending,
		CreatedAt:      time.Now(),
	}

	query := `
		INSERT INTO student_requests (
			id, lead_id, listing_id, request_type, university, program,
			move_in_date, budget, guarantor, message, preferred_dates,
			status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(
		query,
		request.ID,
		request.LeadID,
		request.ListingID,
		request.RequestType,
		request.University,
		request.Program,
		request.MoveInDate,
		request.Budget,
		request.Guarantor,
		request.Message,
		request.PreferredDates,
		request.Status,
		request.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create student request: %w", err)
	}

	return request, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Request statuses, independent of the parent lead's status
const (
	RequestStatusPending   = "pending"
	RequestStatusConfirmed = "confirmed"
	RequestStatusCompleted = "completed"
	RequestStatusCancelled = "cancelled"
)

// Student request types
const (
	RequestTypeViewing = "viewing"
	RequestTypeApply   = "apply"
)

// StudentRequest is the 1:1 extension of a student-type lead. listing_id is a
// weak reference; existence is not re-validated at write time.
type StudentRequest struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	LeadID         uuid.UUID      `json:"lead_id" db:"lead_id"`
	ListingID      uuid.UUID      `json:"listing_id" db:"listing_id"`
	RequestType    string         `json:"request_type" db:"request_type"`
	University     string         `json:"university" db:"university"`
	Program        string         `json:"program" db:"program"`
	MoveInDate     string         `json:"move_in_date" db:"move_in_date"`
	Budget         float64        `json:"budget" db:"budget"`
	Guarantor      bool           `json:"guarantor" db:"guarantor"`
	Message        NullString     `json:"message,omitempty" db:"message"`
	PreferredDates pq.StringArray `json:"preferred_dates" db:"preferred_dates"`
	Status         string         `json:"status" db:"status"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// TouristRequest is the 1:1 extension of a tourist-type lead
type TouristRequest struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	LeadID    uuid.UUID  `json:"lead_id" db:"lead_id"`
	ListingID uuid.UUID  `json:"listing_id" db:"listing_id"`
	Guests    int        `json:"guests" db:"guests"`
	DateFrom  string     `json:"date_from" db:"date_from"`
	DateTo    string     `json:"date_to" db:"date_to"`
	Message   NullString `json:"message,omitempty" db:"message"`
	Status    string     `json:"status" db:"status"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

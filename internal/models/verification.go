package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Verification types
const (
	VerificationTypeStudent  = "student"
	VerificationTypeInvestor = "investor"
)

// Verification statuses. "not_submitted" is a client-side default and is
// never persisted. "in_review" is reserved: it exists in the enum but no
// server operation currently transitions into it.
const (
	VerificationStatusSubmitted = "submitted"
	VerificationStatusInReview  = "in_review"
	VerificationStatusApproved  = "approved"
	VerificationStatusRejected  = "rejected"
)

// Verification is an identity-check record for a lead. Document fields hold
// object-storage paths, never file contents. Proof-of-address paths are
// populated only for investor-type verifications.
type Verification struct {
	ID                  uuid.UUID      `json:"id" db:"id"`
	LeadID              uuid.UUID      `json:"lead_id" db:"lead_id"`
	VerificationType    string         `json:"verification_type" db:"verification_type"`
	FullName            string         `json:"full_name" db:"full_name"`
	DOB                 string         `json:"dob" db:"dob"`
	Nationality         string         `json:"nationality" db:"nationality"`
	AddressLine         string         `json:"address_line" db:"address_line"`
	City                string         `json:"city" db:"city"`
	PostalCode          string         `json:"postal_code" db:"postal_code"`
	Country             string         `json:"country" db:"country"`
	IDDocType           string         `json:"id_doc_type" db:"id_doc_type"`
	IDDocNumber         string         `json:"id_doc_number" db:"id_doc_number"`
	IDDocFiles          pq.StringArray `json:"id_doc_files" db:"id_doc_files"`
	ProofOfAddressFiles pq.StringArray `json:"proof_of_address_files" db:"proof_of_address_files"`
	ConsentPrivacy      bool           `json:"consent_privacy" db:"consent_privacy"`
	ConsentMarketing    bool           `json:"consent_marketing" db:"consent_marketing"`
	Status              string         `json:"status" db:"status"`
	AdminNotes          NullString     `json:"admin_notes,omitempty" db:"admin_notes"`
	CreatedAt           time.Time      `json:"created_at" db:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Consent types
const (
	ConsentTypePrivacy   = "privacy"
	ConsentTypeMarketing = "marketing"
	ConsentTypeTerms     = "terms"
)

// ConsentLog is an append-only compliance row proving a user agreed to a
// policy version at a given time. IP and user agent are stored only as
// one-way hashes; the raw values never reach the database.
type ConsentLog struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	LeadID        *uuid.UUID `json:"lead_id,omitempty" db:"lead_id"`
	Email         string     `json:"email" db:"email"`
	ConsentType   string     `json:"consent_type" db:"consent_type"`
	Version       string     `json:"version" db:"version"`
	Language      string     `json:"language" db:"language"`
	IPHash        string     `json:"ip_hash" db:"ip_hash"`
	UserAgentHash string     `json:"user_agent_hash" db:"user_agent_hash"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

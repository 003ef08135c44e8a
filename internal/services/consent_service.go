package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abitareitalia/leads-backend/internal/database"
	"github.com/abitareitalia/leads-backend/internal/models"
	"github.com/abitareitalia/leads-backend/internal/utils"
)

// ClientMeta carries the anonymized client metadata attached to consent rows.
// Hashing happens at construction so raw values never travel further into the
// pipeline. The parsed device info is for operator logs only.
type ClientMeta struct {
	IPHash        string
	UserAgentHash string
	Device        utils.DeviceInfo
}

// NewClientMeta hashes the raw client address and user agent
func NewClientMeta(clientAddr, userAgent string) ClientMeta {
	return ClientMeta{
		IPHash:        utils.HashString(clientAddr),
		UserAgentHash: utils.HashString(userAgent),
		Device:        utils.ParseUserAgent(userAgent),
	}
}

// consentLogWriter is the repository contract the recorder needs
type consentLogWriter interface {
	CreateConsentLog(params database.NewConsentLogParams) (*models.ConsentLog, error)
}

// ConsentService builds and persists the consent audit trail. One privacy row
// per captured submission, plus one marketing row iff the user opted in.
type ConsentService struct {
	repo          consentLogWriter
	policyVersion string
	logger        *logrus.Logger
}

// NewConsentService creates a new consent recorder
func NewConsentService(repo consentLogWriter, policyVersion string, logger *logrus.Logger) *ConsentService {
	return &ConsentService{
		repo:          repo,
		policyVersion: policyVersion,
		logger:        logger,
	}
}

// Record appends the consent rows for one submission. The privacy row is
// mandatory and its failure is returned; a failed marketing row is logged and
// swallowed since the privacy record is the compliance-critical artifact.
func (s *ConsentService) Record(leadID *uuid.UUID, email, language string, marketingOptIn bool, meta ClientMeta) error {
	_, err := s.repo.CreateConsentLog(database.NewConsentLogParams{
		LeadID:        leadID,
		Email:         email,
		ConsentType:   models.ConsentTypePrivacy,
		Version:       s.policyVersion,
		Language:      language,
		IPHash:        meta.IPHash,
		UserAgentHash: meta.UserAgentHash,
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"consent_type": models.ConsentTypePrivacy,
		"version":      s.policyVersion,
		"device":       meta.Device,
	}).Debug("consent recorded")

	if !marketingOptIn {
		return nil
	}

	_, err = s.repo.CreateConsentLog(database.NewConsentLogParams{
		LeadID:        leadID,
		Email:         email,
		ConsentType:   models.ConsentTypeMarketing,
		Version:       s.policyVersion,
		Language:      language,
		IPHash:        meta.IPHash,
		UserAgentHash: meta.UserAgentHash,
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to record marketing consent")
	}

	return nil
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abitareitalia/leads-backend/internal/config"
	"github.com/abitareitalia/leads-backend/internal/database"
	"github.com/abitareitalia/leads-backend/internal/models"
	"github.com/abitareitalia/leads-backend/internal/storage"
	"github.com/abitareitalia/leads-backend/internal/utils"
	"github.com/abitareitalia/leads-backend/pkg/validator"
)

// ErrInvalidDecision is returned when a review decision is neither approved
// nor rejected
var ErrInvalidDecision = errors.New("decision must be approved or rejected")

// UploadFile is one identity document received from the caller
type UploadFile struct {
	Name        string
	ContentType string
	Data        io.Reader
}

// verificationStore is the repository contract of the verification pipeline
type verificationStore interface {
	CreateVerification(params database.NewVerificationParams) (*models.Verification, error)
	GetVerificationByID(id uuid.UUID) (*models.Verification, error)
	UpdateVerificationStatus(id uuid.UUID, status, adminNotes string) error
	ListVerifications(status string) ([]models.Verification, error)
}

// leadReader resolves the parent lead of a verification
type leadReader interface {
	GetLeadByID(id uuid.UUID) (*models.Lead, error)
}

// leadStatusUpdater is the explicit cross-service dependency used by the
// approval side effect. Satisfied by *LeadService.
type leadStatusUpdater interface {
	UpdateLeadStatus(id uuid.UUID, status string) error
}

// VerificationService orchestrates identity-check submissions: document
// uploads, the verification record, the consent trail, and the admin review
// workflow.
type VerificationService struct {
	validator     *validator.SubmissionValidator
	verifications verificationStore
	leads         leadReader
	leadStatus    leadStatusUpdater
	documents     storage.DocumentStore
	consent       consentRecorder
	cfg           config.StorageConfig
	logger        *logrus.Logger
}

// NewVerificationService creates a new verification write service
func NewVerificationService(
	submissionValidator *validator.SubmissionValidator,
	verifications verificationStore,
	leads leadReader,
	leadStatus leadStatusUpdater,
	documents storage.DocumentStore,
	consent consentRecorder,
	cfg config.StorageConfig,
	logger *logrus.Logger,
) *VerificationService {
	return &VerificationService{
		validator:     submissionValidator,
		verifications: verifications,
		leads:         leads,
		leadStatus:    leadStatus,
		documents:     documents,
		consent:       consent,
		cfg:           cfg,
		logger:        logger,
	}
}

// Submit validates and persists an identity verification. Individual file
// uploads that fail are skipped, not fatal: the verification row records
// whatever uploaded successfully. Proof-of-address files are uploaded only
// for investor verifications, regardless of what the caller sent.
func (s *VerificationService) Submit(ctx context.Context, sub SubmissionContext, input validator.VerificationInput, idFiles, proofFiles []UploadFile) (uuid.UUID, error) {
	if err := s.validator.Validate(input); err != nil {
		return uuid.Nil, err
	}

	leadID := uuid.MustParse(input.LeadID)

	idPaths := s.uploadAll(ctx, s.cfg.IDDocsBucket, leadID, "id", idFiles)

	var proofPaths []string
	if input.VerificationType == models.VerificationTypeInvestor {
		proofPaths = s.uploadAll(ctx, s.cfg.ProofBucket, leadID, "proof", proofFiles)
	}

	verification, err := s.verifications.CreateVerification(database.NewVerificationParams{
		LeadID:              leadID,
		VerificationType:    input.VerificationType,
		FullName:            input.FullName,
		DOB:                 input.DOB,
		Nationality:         input.Nationality,
		AddressLine:         input.AddressLine,
		City:                input.City,
		PostalCode:          input.PostalCode,
		Country:             input.Country,
		IDDocType:           input.IDDocType,
		IDDocNumber:         input.IDDocNumber,
		IDDocFiles:          idPaths,
		ProofOfAddressFiles: proofPaths,
		ConsentMarketing:    input.ConsentMarketing,
	})
	if err != nil {
		s.logger.WithError(err).Error("verification insert failed")
		return uuid.Nil, &StorageError{Op: "verification insert", Err: err}
	}

	lead, err := s.leads.GetLeadByID(leadID)
	if err != nil || lead == nil {
		s.logger.WithError(err).WithField("lead_id", leadID).Error("lead lookup for consent failed, verification kept")
		return verification.ID, nil
	}

	if err := s.consent.Record(&leadID, lead.Email, input.Language, input.ConsentMarketing, sub.Client); err != nil {
		s.logger.WithError(err).WithField("lead_id", leadID).Error("consent insert failed, verification kept")
	}

	return verification.ID, nil
}

// Review applies an admin approve/reject decision. Terminal: no transition
// leads back out of approved or rejected. Approval explicitly qualifies the
// parent lead through the lead service.
func (s *VerificationService) Review(verificationID uuid.UUID, decision, notes string) error {
	if decision != models.VerificationStatusApproved && decision != models.VerificationStatusRejected {
		return ErrInvalidDecision
	}

	verification, err := s.verifications.GetVerificationByID(verificationID)
	if err != nil {
		return &StorageError{Op: "verification lookup", Err: err}
	}
	if verification == nil {
		return ErrNotFound
	}

	if err := s.verifications.UpdateVerificationStatus(verificationID, decision, notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		s.logger.WithError(err).WithField("verification_id", verificationID).Error("verification status update failed")
		return &StorageError{Op: "verification status update", Err: err}
	}

	if decision == models.VerificationStatusApproved {
		if err := s.leadStatus.UpdateLeadStatus(verification.LeadID, models.LeadStatusQualified); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"verification_id": verificationID,
				"lead_id":         verification.LeadID,
			}).Error("lead qualification after approval failed")
			return err
		}
	}

	return nil
}

// ListVerifications returns verifications for the admin dashboard, newest
// first
func (s *VerificationService) ListVerifications(status string) ([]models.Verification, error) {
	verifications, err := s.verifications.ListVerifications(status)
	if err != nil {
		return nil, &StorageError{Op: "verification list", Err: err}
	}
	return verifications, nil
}

// SignedDocumentURL returns a short-lived retrieval URL for one stored
// document of a verification. The path must belong to that verification;
// anything else is treated as not found.
func (s *VerificationService) SignedDocumentURL(ctx context.Context, verificationID uuid.UUID, path string) (string, error) {
	verification, err := s.verifications.GetVerificationByID(verificationID)
	if err != nil {
		return "", &StorageError{Op: "verification lookup", Err: err}
	}
	if verification == nil {
		return "", ErrNotFound
	}

	bucket := ""
	for _, p := range verification.IDDocFiles {
		if p == path {
			bucket = s.cfg.IDDocsBucket
		}
	}
	for _, p := range verification.ProofOfAddressFiles {
		if p == path {
			bucket = s.cfg.ProofBucket
		}
	}
	if bucket == "" {
		return "", ErrNotFound
	}

	url, err := s.documents.SignedURL(ctx, bucket, path, s.cfg.SignedURLTTL)
	if err != nil {
		s.logger.WithError(err).WithField("path", path).Error("signed URL generation failed")
		return "", &StorageError{Op: "signed url", Err: err}
	}

	return url, nil
}

// uploadAll uploads a batch of files concurrently and returns the paths that
// succeeded, in input order. Each upload gets its own bounded timeout so one
// slow file cannot stall the submission indefinitely.
func (s *VerificationService) uploadAll(ctx context.Context, bucket string, leadID uuid.UUID, kind string, files []UploadFile) []string {
	results := make([]string, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file UploadFile) {
			defer wg.Done()

			path := documentPath(leadID, kind, file.Name)

			uploadCtx, cancel := context.WithTimeout(ctx, s.cfg.UploadTimeout)
			defer cancel()

			if err := s.documents.Upload(uploadCtx, bucket, path, file.Data, file.ContentType); err != nil {
				s.logger.WithError(err).WithFields(logrus.Fields{
					"lead_id": leadID,
					"bucket":  bucket,
					"file":    file.Name,
				}).Error("document upload failed, skipping file")
				return
			}

			results[i] = path
		}(i, file)
	}
	wg.Wait()

	paths := make([]string, 0, len(files))
	for _, p := range results {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// documentPath builds a collision-resistant storage path of the form
// {leadId}/{timestamp}_{kind}_{token}.{ext}
func documentPath(leadID uuid.UUID, kind, fileName string) string {
	ext := "bin"
	if idx := strings.LastIndex(fileName, "."); idx >= 0 && idx < len(fileName)-1 {
		ext = strings.ToLower(fileName[idx+1:])
	}
	return fmt.Sprintf("%s/%d_%s_%s.%s", leadID, time.Now().UnixMilli(), kind, utils.RandomToken(), ext)
}

package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abitareitalia/leads-backend/internal/database"
	"github.com/abitareitalia/leads-backend/internal/models"
	"github.com/abitareitalia/leads-backend/pkg/validator"
)

// SubmissionContext carries the per-request ambient data of a public
// submission: the hashed client fingerprint for rate limiting, the optional
// authenticated user (resolved from the session, never client-supplied), and
// the anonymized client metadata for consent rows.
type SubmissionContext struct {
	Fingerprint string
	UserID      *uuid.UUID
	Client      ClientMeta
}

// leadStore is the repository contract of the lead pipeline
type leadStore interface {
	CreateLead(params database.NewLeadParams) (*models.Lead, error)
	GetLeadByID(id uuid.UUID) (*models.Lead, error)
	FindWaitlistLeadByEmail(email string) (*models.Lead, error)
	UpdateLeadStatus(id uuid.UUID, status string) error
	ListLeads(leadType, status string) ([]models.Lead, error)
}

type investorProfileStore interface {
	CreateInvestorProfile(params database.NewInvestorProfileParams) (*models.InvestorProfile, error)
}

type studentRequestStore interface {
	CreateStudentRequest(params database.NewStudentRequestParams) (*models.StudentRequest, error)
}

type touristRequestStore interface {
	CreateTouristRequest(params database.NewTouristRequestParams) (*models.TouristRequest, error)
}

// submissionLimiter gates submissions per client fingerprint
type submissionLimiter interface {
	Allow(ctx context.Context, fingerprint string) bool
}

// consentRecorder appends the consent audit rows for a captured submission
type consentRecorder interface {
	Record(leadID *uuid.UUID, email, language string, marketingOptIn bool, meta ClientMeta) error
}

// LeadService orchestrates lead creation: rate-limit gate, schema validation,
// idempotent waitlist dedup, the lead insert, the type-specific child insert,
// and the consent trail. The child insert and consent rows are best-effort
// secondary writes: their failure is logged but never rolls back the lead,
// trading strict consistency for lead-capture reliability.
type LeadService struct {
	limiter   submissionLimiter
	validator *validator.SubmissionValidator
	leads     leadStore
	investors investorProfileStore
	students  studentRequestStore
	tourists  touristRequestStore
	consent   consentRecorder
	logger    *logrus.Logger
}

// NewLeadService creates a new lead write service
func NewLeadService(
	limiter submissionLimiter,
	submissionValidator *validator.SubmissionValidator,
	leads leadStore,
	investors investorProfileStore,
	students studentRequestStore,
	tourists touristRequestStore,
	consent consentRecorder,
	logger *logrus.Logger,
) *LeadService {
	return &LeadService{
		limiter:   limiter,
		validator: submissionValidator,
		leads:     leads,
		investors: investors,
		students:  students,
		tourists:  tourists,
		consent:   consent,
		logger:    logger,
	}
}

// SubmitWaitlist captures a waitlist signup. Duplicate submissions for an
// email that already has a waitlist lead succeed silently without writing, so
// the response gives no email-enumeration signal.
func (s *LeadService) SubmitWaitlist(ctx context.Context, sub SubmissionContext, input validator.WaitlistInput) error {
	if !s.limiter.Allow(ctx, sub.Fingerprint) {
		return ErrRateLimited
	}

	if err := s.validator.Validate(input); err != nil {
		return err
	}

	existing, err := s.leads.FindWaitlistLeadByEmail(input.Email)
	if err != nil {
		s.logger.WithError(err).Error("waitlist dedup lookup failed")
		return &StorageError{Op: "waitlist lookup", Err: err}
	}
	if existing != nil {
		return nil
	}

	lead, err := s.leads.CreateLead(database.NewLeadParams{
		LeadType: models.LeadTypeWaitlist,
		Name:     input.Name,
		Email:    input.Email,
		Language: input.Language,
		Source:   "waitlist_" + input.Interest,
	})
	if err != nil {
		s.logger.WithError(err).Error("waitlist lead insert failed")
		return &StorageError{Op: "lead insert", Err: err}
	}

	s.recordConsent(lead, false, sub.Client)
	return nil
}

// SubmitInvestorInterest captures an investor interest form submission and
// its profile extension
func (s *LeadService) SubmitInvestorInterest(ctx context.Context, sub SubmissionContext, input validator.InvestorInterestInput) (uuid.UUID, error) {
	if !s.limiter.Allow(ctx, sub.Fingerprint) {
		return uuid.Nil, ErrRateLimited
	}

	if err := s.validator.Validate(input); err != nil {
		return uuid.Nil, err
	}

	lead, err := s.leads.CreateLead(database.NewLeadParams{
		UserID:   sub.UserID,
		LeadType: models.LeadTypeInvestor,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Language: input.Language,
		Source:   "investor_form",
	})
	if err != nil {
		s.logger.WithError(err).Error("investor lead insert failed")
		return uuid.Nil, &StorageError{Op: "lead insert", Err: err}
	}

	var propertyID *uuid.UUID
	if input.PropertyInterestID != "" {
		// Format already validated
		id := uuid.MustParse(input.PropertyInterestID)
		propertyID = &id
	}

	_, err = s.investors.CreateInvestorProfile(database.NewInvestorProfileParams{
		LeadID:             lead.ID,
		Country:            input.Country,
		InvestorType:       input.InvestorType,
		BudgetRange:        input.BudgetRange,
		RiskTolerance:      input.RiskTolerance,
		Timeframe:          input.Timeframe,
		Notes:              input.Notes,
		PropertyInterestID: propertyID,
	})
	if err != nil {
		s.logSecondaryFailure(lead.ID, "investor profile insert", err)
	}

	s.recordConsent(lead, input.ConsentMarketing, sub.Client)
	return lead.ID, nil
}

// SubmitStudentRequest captures a student viewing/application submission. The
// returned request id is nil when the child insert failed; the lead itself is
// still captured.
func (s *LeadService) SubmitStudentRequest(ctx context.Context, sub SubmissionContext, input validator.StudentRequestInput) (uuid.UUID, *uuid.UUID, error) {
	if !s.limiter.Allow(ctx, sub.Fingerprint) {
		return uuid.Nil, nil, ErrRateLimited
	}

	if err := s.validator.Validate(input); err != nil {
		return uuid.Nil, nil, err
	}

	lead, err := s.leads.CreateLead(database.NewLeadParams{
		UserID:   sub.UserID,
		LeadType: models.LeadTypeStudent,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Language: input.Language,
		Source:   "student_" + input.RequestType,
	})
	if err != nil {
		s.logger.WithError(err).Error("student lead insert failed")
		return uuid.Nil, nil, &StorageError{Op: "lead insert", Err: err}
	}

	var requestID *uuid.UUID
	request, err := s.students.CreateStudentRequest(database.NewStudentRequestParams{
		LeadID:         lead.ID,
		ListingID:      uuid.MustParse(input.ListingID),
		RequestType:    input.RequestType,
		University:     input.University,
		Program:        input.Program,
		MoveInDate:     input.MoveInDate,
		Budget:         input.Budget,
		Guarantor:      input.Guarantor,
		Message:        input.Message,
		PreferredDates: input.PreferredDates,
	})
	if err != nil {
		s.logSecondaryFailure(lead.ID, "student request insert", err)
	} else {
		requestID = &request.ID
	}

	s.recordConsent(lead, input.ConsentMarketing, sub.Client)
	return lead.ID, requestID, nil
}

// SubmitTouristRequest captures a tourist stay request submission
func (s *LeadService) SubmitTouristRequest(ctx context.Context, sub SubmissionContext, input validator.TouristRequestInput) (uuid.UUID, *uuid.UUID, error) {
	if !s.limiter.Allow(ctx, sub.Fingerprint) {
		return uuid.Nil, nil, ErrRateLimited
	}

	if err := s.validator.Validate(input); err != nil {
		return uuid.Nil, nil, err
	}

	lead, err := s.leads.CreateLead(database.NewLeadParams{
		UserID:   sub.UserID,
		LeadType: models.LeadTypeTourist,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Language: input.Language,
		Source:   "tourist_request",
	})
	if err != nil {
		s.logger.WithError(err).Error("tourist lead insert failed")
		return uuid.Nil, nil, &StorageError{Op: "lead insert", Err: err}
	}

	var requestID *uuid.UUID
	request, err := s.tourists.CreateTouristRequest(database.NewTouristRequestParams{
		LeadID:    lead.ID,
		ListingID: uuid.MustParse(input.ListingID),
		Guests:    input.Guests,
		DateFrom:  input.DateFrom,
		DateTo:    input.DateTo,
		Message:   input.Message,
	})
	if err != nil {
		s.logSecondaryFailure(lead.ID, "tourist request insert", err)
	} else {
		requestID = &request.ID
	}

	s.recordConsent(lead, input.ConsentMarketing, sub.Client)
	return lead.ID, requestID, nil
}

// UpdateLeadStatus sets the admin-controlled status of a lead. Also the
// explicit target of the verification approval side effect.
func (s *LeadService) UpdateLeadStatus(id uuid.UUID, status string) error {
	if !models.ValidLeadStatuses[status] {
		return ErrInvalidStatus
	}

	err := s.leads.UpdateLeadStatus(id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		s.logger.WithError(err).WithField("lead_id", id).Error("lead status update failed")
		return &StorageError{Op: "lead status update", Err: err}
	}
	return nil
}

// GetLead retrieves a lead by id
func (s *LeadService) GetLead(id uuid.UUID) (*models.Lead, error) {
	lead, err := s.leads.GetLeadByID(id)
	if err != nil {
		return nil, &StorageError{Op: "lead lookup", Err: err}
	}
	if lead == nil {
		return nil, ErrNotFound
	}
	return lead, nil
}

// ListLeads returns leads for the admin dashboard, newest first
func (s *LeadService) ListLeads(leadType, status string) ([]models.Lead, error) {
	leads, err := s.leads.ListLeads(leadType, status)
	if err != nil {
		return nil, &StorageError{Op: "lead list", Err: err}
	}
	return leads, nil
}

// recordConsent appends the consent rows for a captured lead. Failures are
// logged and swallowed: the lead record is already safe.
func (s *LeadService) recordConsent(lead *models.Lead, marketingOptIn bool, meta ClientMeta) {
	if err := s.consent.Record(&lead.ID, lead.Email, lead.Language, marketingOptIn, meta); err != nil {
		s.logSecondaryFailure(lead.ID, "consent insert", err)
	}
}

// logSecondaryFailure reports a swallowed secondary write so operators can
// reconcile leads lacking a child entity or consent row
func (s *LeadService) logSecondaryFailure(leadID uuid.UUID, op string, err error) {
	s.logger.WithError(err).WithFields(logrus.Fields{
		"lead_id": leadID,
		"op":      op,
	}).Error("secondary write failed, lead kept")
}

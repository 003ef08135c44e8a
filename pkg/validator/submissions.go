// Package validator defines the typed inputs of the intake pipeline and their
// schema validation. Each submission kind is a struct constructed only from
// untrusted caller data and checked as a whole: validation reports every
// violated field, not just the first, and never coerces out-of-range values.
package validator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError enumerates every violated field constraint of a submission.
// Kinds are stable identifiers (required, email, min, max, oneof, gt, uuid,
// datetime, eq) so callers can localize messages without parsing prose.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, kind := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, kind))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, ", ")
}

// WaitlistInput is a waitlist form submission
type WaitlistInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Interest string `json:"interest" validate:"required,oneof=investor student tourist"`
	Language string `json:"language" validate:"required,oneof=it en"`
}

// InvestorInterestInput is an investor interest form submission
type InvestorInterestInput struct {
	Name               string `json:"name" validate:"required,min=2,max=100"`
	Email              string `json:"email" validate:"required,email,max=255"`
	Phone              string `json:"phone" validate:"omitempty,max=30"`
	Country            string `json:"country" validate:"required,min=2,max=100"`
	InvestorType       string `json:"investor_type" validate:"required,oneof=retail pro"`
	BudgetRange        string `json:"budget_range" validate:"required"`
	RiskTolerance      string `json:"risk_tolerance" validate:"required"`
	Timeframe          string `json:"timeframe" validate:"required"`
	Notes              string `json:"notes" validate:"omitempty,max=1000"`
	PropertyInterestID string `json:"property_interest_id" validate:"omitempty,uuid"`
	ConsentPrivacy     bool   `json:"consent_privacy" validate:"eq=true"`
	ConsentMarketing   bool   `json:"consent_marketing"`
	Language           string `json:"language" validate:"required,oneof=it en"`
}

// StudentRequestInput is a student viewing/application form submission
type StudentRequestInput struct {
	Name             string   `json:"name" validate:"required,min=2,max=100"`
	Email            string   `json:"email" validate:"required,email,max=255"`
	Phone            string   `json:"phone" validate:"omitempty,max=30"`
	ListingID        string   `json:"listing_id" validate:"required,uuid"`
	RequestType      string   `json:"request_type" validate:"required,oneof=viewing apply"`
	University       string   `json:"university" validate:"required,min=2,max=200"`
	Program          string   `json:"program" validate:"required,min=2,max=200"`
	MoveInDate       string   `json:"move_in_date" validate:"required,datetime=2006-01-02"`
	Budget           float64  `json:"budget" validate:"gt=0"`
	Guarantor        bool     `json:"guarantor"`
	Message          string   `json:"message" validate:"omitempty,max=1000"`
	PreferredDates   []string `json:"preferred_dates" validate:"max=5,dive,datetime=2006-01-02"`
	ConsentPrivacy   bool     `json:"consent_privacy" validate:"eq=true"`
	ConsentMarketing bool     `json:"consent_marketing"`
	Language         string   `json:"language" validate:"required,oneof=it en"`
}

// TouristRequestInput is a tourist stay request form submission
type TouristRequestInput struct {
	Name             string `json:"name" validate:"required,min=2,max=100"`
	Email            string `json:"email" validate:"required,email,max=255"`
	Phone            string `json:"phone" validate:"omitempty,max=30"`
	ListingID        string `json:"listing_id" validate:"required,uuid"`
	Guests           int    `json:"guests" validate:"min=1,max=20"`
	DateFrom         string `json:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo           string `json:"date_to" validate:"required,datetime=2006-01-02"`
	Message          string `json:"message" validate:"omitempty,max=1000"`
	ConsentPrivacy   bool   `json:"consent_privacy" validate:"eq=true"`
	ConsentMarketing bool   `json:"consent_marketing"`
	Language         string `json:"language" validate:"required,oneof=it en"`
}

// VerificationInput is an identity verification submission. Address fields
// are bounded but optional; nothing below the ID document fields is enforced
// differently per verification type at the schema level.
type VerificationInput struct {
	LeadID           string `json:"lead_id" validate:"required,uuid"`
	VerificationType string `json:"verification_type" validate:"required,oneof=student investor"`
	FullName         string `json:"full_name" validate:"required,min=2,max=200"`
	DOB              string `json:"dob" validate:"required,datetime=2006-01-02"`
	Nationality      string `json:"nationality" validate:"required,min=2,max=100"`
	AddressLine      string `json:"address_line" validate:"omitempty,max=300"`
	City             string `json:"city" validate:"omitempty,max=100"`
	PostalCode       string `json:"postal_code" validate:"omitempty,max=20"`
	Country          string `json:"country" validate:"omitempty,max=100"`
	IDDocType        string `json:"id_doc_type" validate:"required"`
	IDDocNumber      string `json:"id_doc_number" validate:"required,max=100"`
	ConsentPrivacy   bool   `json:"consent_privacy" validate:"eq=true"`
	ConsentMarketing bool   `json:"consent_marketing"`
	Language         string `json:"language" validate:"required,oneof=it en"`
}

// SubmissionValidator validates the typed submission inputs. Pure: no side
// effects over its input.
type SubmissionValidator struct {
	validate *validator.Validate
}

// NewSubmissionValidator creates a validator that reports field names by
// their json tags
func NewSubmissionValidator() *SubmissionValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &SubmissionValidator{validate: v}
}

// Validate checks a submission input against its declared schema. Returns nil
// on success or a *ValidationError listing every violated field.
func (v *SubmissionValidator) Validate(input interface{}) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Non-struct input is a programming error, not user input
		return err
	}

	verr := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Fields[fe.Field()] = fe.Tag()
	}

	return verr
}

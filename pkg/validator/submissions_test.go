package validator

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestValidateWaitlistInput(t *testing.T) {
	v := NewSubmissionValidator()

	t.Run("Valid", func(t *testing.T) {
		err := v.Validate(WaitlistInput{
			Name:     "Marco Rossi",
			Email:    "marco@example.com",
			Interest: "student",
			Language: "it",
		})
		assert.NoError(t, err)
	})

	t.Run("Collects Every Violation", func(t *testing.T) {
		fields := validationFields(t, v.Validate(WaitlistInput{
			Name:     "M",
			Email:    "not-an-email",
			Interest: "buyer",
			Language: "de",
		}))

		assert.Equal(t, "min", fields["name"])
		assert.Equal(t, "email", fields["email"])
		assert.Equal(t, "oneof", fields["interest"])
		assert.Equal(t, "oneof", fields["language"])
	})

	t.Run("Name Too Long", func(t *testing.T) {
		fields := validationFields(t, v.Validate(WaitlistInput{
			Name:     strings.Repeat("a", 101),
			Email:    "marco@example.com",
			Interest: "tourist",
			Language: "en",
		}))
		assert.Equal(t, "max", fields["name"])
	})
}

func TestValidateInvestorInterestInput(t *testing.T) {
	v := NewSubmissionValidator()

	valid := InvestorInterestInput{
		Name:           "Marco Rossi",
		Email:          "marco@example.com",
		Country:        "Italy",
		InvestorType:   "retail",
		BudgetRange:    "100k-250k",
		RiskTolerance:  "medium",
		Timeframe:      "6-12m",
		ConsentPrivacy: true,
		Language:       "en",
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(valid))
	})

	t.Run("Privacy Consent Must Be True", func(t *testing.T) {
		input := valid
		input.ConsentPrivacy = false
		fields := validationFields(t, v.Validate(input))
		assert.Equal(t, "eq", fields["consent_privacy"])
	})

	t.Run("Marketing Consent Is Optional", func(t *testing.T) {
		input := valid
		input.ConsentMarketing = false
		assert.NoError(t, v.Validate(input))
	})

	t.Run("Property Interest Must Be UUID", func(t *testing.T) {
		input := valid
		input.PropertyInterestID = "listing-42"
		fields := validationFields(t, v.Validate(input))
		assert.Equal(t, "uuid", fields["property_interest_id"])

		input.PropertyInterestID = uuid.NewString()
		assert.NoError(t, v.Validate(input))
	})
}

func TestValidateStudentRequestInput(t *testing.T) {
	v := NewSubmissionValidator()

	valid := StudentRequestInput{
		Name:           "Anna Bianchi",
		Email:          "anna@example.com",
		ListingID:      uuid.NewString(),
		RequestType:    "apply",
		University:     "Politecnico di Milano",
		Program:        "Architecture",
		MoveInDate:     "2026-09-01",
		Budget:         650,
		ConsentPrivacy: true,
		Language:       "it",
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(valid))
	})

	t.Run("Budget Must Be Positive", func(t *testing.T) {
		input := valid
		input.Budget = 0
		fields := validationFields(t, v.Validate(input))
		assert.Equal(t, "gt", fields["budget"])
	})

	t.Run("Move In Date Format", func(t *testing.T) {
		input := valid
		input.MoveInDate = "01/09/2026"
		fields := validationFields(t, v.Validate(input))
		assert.Equal(t, "datetime", fields["move_in_date"])
	})

	t.Run("Preferred Dates Bounded And Well Formed", func(t *testing.T) {
		input := valid
		input.PreferredDates = []string{"2026-09-01", "tomorrow"}
		fields := validationFields(t, v.Validate(input))
		assert.Equal(t, "datetime", fields["preferred_dates[1]"])

		input.PreferredDates = []string{"2026-09-01", "2026-09-02", "2026-09-03", "2026-09-04", "2026-09-05", "2026-09-06"}
		fields = validationFields(t, v.Validate(input))
		assert.Equal(t, "max", fields["preferred_dates"])
	})

	t.Run("Request Type Enum", func(t *testing.T) {
		input := valid
		input.RequestType = "tour"
		fields := validationFields(t, v.Validate(input))
		assert.Equal(t, "oneof", fields["request_type"])
	})
}

func TestValidateTouristRequestInput(t *testing.T) {
	v := NewSubmissionValidator()

	valid := TouristRequestInput{
		Name:           "John Smith",
		Email:          "john@example.com",
		ListingID:      uuid.NewString(),
		Guests:         2,
		DateFrom:       "2026-10-01",
		DateTo:         "2026-10-08",
		ConsentPrivacy: true,
		Language:       "en",
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(valid))
	})

	t.Run("Guests Range", func(t *testing.T) {
		input := valid
		input.Guests = 0
		fields := validationFields(t, v.Validate(input))
		assert.Equal(t, "min", fields["guests"])

		input.Guests = 21
		fields = validationFields(t, v.Validate(input))
		assert.Equal(t, "max", fields["guests"])

		input.Guests = 20
		assert.NoError(t, v.Validate(input))
	})
}

func TestValidateVerificationInput(t *testing.T) {
	v := NewSubmissionValidator()

	valid := VerificationInput{
		LeadID:           uuid.NewString(),
		VerificationType: "investor",
		FullName:         "Marco Rossi",
		DOB:              "1985-06-14",
		Nationality:      "IT",
		IDDocType:        "passport",
		IDDocNumber:      "YA1234567",
		ConsentPrivacy:   true,
		Language:         "it",
	}

	t.Run("Valid Without Address", func(t *testing.T) {
		assert.NoError(t, v.Validate(valid))
	})

	t.Run("Verification Type Enum", func(t *testing.T) {
		input := valid
		input.VerificationType = "tourist"
		fields := validationFields(t, v.Validate(input))
		assert.Equal(t, "oneof", fields["verification_type"])
	})

	t.Run("Lead ID Must Be UUID", func(t *testing.T) {
		input := valid
		input.LeadID = "lead-7"
		fields := validationFields(t, v.Validate(input))
		assert.Equal(t, "uuid", fields["lead_id"])
	})
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"email": "email", "name": "min"}}
	assert.Equal(t, "validation failed: email: email, name: min", err.Error())
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abitareitalia/leads-backend/internal/services"
	"github.com/abitareitalia/leads-backend/pkg/validator"
)

// ErrorResponse is the uniform error payload. The error field is a stable
// kind the caller localizes; the message is an untranslated fallback and
// never carries storage detail.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// respondError maps pipeline errors onto HTTP responses
func respondError(c *gin.Context, err error) {
	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid submission",
			Fields:  validationErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Error:   "rate_limited",
			Message: "Too many requests. Please try again later.",
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Resource not found",
		})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_status",
			Message: "Unknown lead status",
		})
	case errors.Is(err, services.ErrInvalidDecision):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_decision",
			Message: "Decision must be approved or rejected",
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Invalid email or password",
		})
	default:
		// Storage and unexpected errors: generic out, detail stays in logs
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "storage_error",
			Message: "Failed to submit. Please try again.",
		})
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abitareitalia/leads-backend/internal/middleware"
	"github.com/abitareitalia/leads-backend/internal/services"
	"github.com/abitareitalia/leads-backend/internal/utils"
	"github.com/abitareitalia/leads-backend/pkg/validator"
)

// LeadHandler handles the public lead submission endpoints
type LeadHandler struct {
	leadService *services.LeadService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
	}
}

// submissionContext derives the per-request ambient data: hashed fingerprint,
// anonymized client metadata, and the optional session user
func submissionContext(c *gin.Context) services.SubmissionContext {
	addr := utils.ClientAddr(c)
	return services.SubmissionContext{
		Fingerprint: utils.HashString(addr),
		UserID:      middleware.SessionUserID(c),
		Client:      services.NewClientMeta(addr, utils.GetUserAgent(c)),
	}
}

// SubmitWaitlistResponse is returned after a waitlist submission
type SubmitWaitlistResponse struct {
	Success bool `json:"success"`
}

// SubmitLeadResponse is returned after investor/student/tourist submissions
type SubmitLeadResponse struct {
	Success   bool       `json:"success"`
	LeadID    uuid.UUID  `json:"lead_id"`
	RequestID *uuid.UUID `json:"request_id,omitempty"`
}

// SubmitWaitlist handles POST /api/v1/leads/waitlist
func (h *LeadHandler) SubmitWaitlist(c *gin.Context) {
	var input validator.WaitlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	if err := h.leadService.SubmitWaitlist(c.Request.Context(), submissionContext(c), input); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmitWaitlistResponse{Success: true})
}

// SubmitInvestorInterest handles POST /api/v1/leads/investor
func (h *LeadHandler) SubmitInvestorInterest(c *gin.Context) {
	var input validator.InvestorInterestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	leadID, err := h.leadService.SubmitInvestorInterest(c.Request.Context(), submissionContext(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SubmitLeadResponse{Success: true, LeadID: leadID})
}

// SubmitStudentRequest handles POST /api/v1/leads/student
func (h *LeadHandler) SubmitStudentRequest(c *gin.Context) {
	var input validator.StudentRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	leadID, requestID, err := h.leadService.SubmitStudentRequest(c.Request.Context(), submissionContext(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SubmitLeadResponse{Success: true, LeadID: leadID, RequestID: requestID})
}

// SubmitTouristRequest handles POST /api/v1/leads/tourist
func (h *LeadHandler) SubmitTouristRequest(c *gin.Context) {
	var input validator.TouristRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	leadID, requestID, err := h.leadService.SubmitTouristRequest(c.Request.Context(), submissionContext(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SubmitLeadResponse{Success: true, LeadID: leadID, RequestID: requestID})
}

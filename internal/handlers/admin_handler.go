package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abitareitalia/leads-backend/internal/services"
)

// AdminHandler handles dashboard login and lead management
type AdminHandler struct {
	adminAuthService *services.AdminAuthService
	leadService      *services.LeadService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminAuthService *services.AdminAuthService, leadService *services.LeadService) *AdminHandler {
	return &AdminHandler{
		adminAuthService: adminAuthService,
		leadService:      leadService,
	}
}

// LoginRequest is the dashboard login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateLeadStatusRequest is the lead status change payload
type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Login handles POST /api/v1/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Email and password are required",
		})
		return
	}

	response, err := h.adminAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListLeads handles GET /api/v1/admin/leads
func (h *AdminHandler) ListLeads(c *gin.Context) {
	leads, err := h.leadService.ListLeads(c.Query("type"), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

// UpdateLeadStatus handles PUT /api/v1/admin/leads/:id/status
func (h *AdminHandler) UpdateLeadStatus(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid lead id",
		})
		return
	}

	var req UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	if err := h.leadService.UpdateLeadStatus(leadID, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

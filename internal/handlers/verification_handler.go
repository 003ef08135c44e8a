package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abitareitalia/leads-backend/internal/services"
	"github.com/abitareitalia/leads-backend/pkg/validator"
)

// VerificationHandler handles verification submission and admin review
type VerificationHandler struct {
	verificationService *services.VerificationService
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verificationService *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
	}
}

// SubmitVerificationResponse is returned after a verification submission
type SubmitVerificationResponse struct {
	Success        bool      `json:"success"`
	VerificationID uuid.UUID `json:"verification_id"`
}

// ReviewVerificationRequest is the admin review payload
type ReviewVerificationRequest struct {
	Decision string `json:"decision" binding:"required"`
	Notes    string `json:"notes"`
}

// SubmitVerification handles POST /api/v1/verifications.
// Multipart form: a "payload" JSON part plus id_files[] and proof_files[].
func (h *VerificationHandler) SubmitVerification(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid multipart form",
		})
		return
	}

	var input validator.VerificationInput
	if err := json.Unmarshal([]byte(c.PostForm("payload")), &input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid payload",
		})
		return
	}

	idFiles, closeID, err := openUploads(form.File["id_files"])
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Unreadable file upload",
		})
		return
	}
	defer closeID()

	proofFiles, closeProof, err := openUploads(form.File["proof_files"])
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Unreadable file upload",
		})
		return
	}
	defer closeProof()

	verificationID, err := h.verificationService.Submit(
		c.Request.Context(),
		submissionContext(c),
		input,
		idFiles,
		proofFiles,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SubmitVerificationResponse{
		Success:        true,
		VerificationID: verificationID,
	})
}

// ListVerifications handles GET /api/v1/admin/verifications
func (h *VerificationHandler) ListVerifications(c *gin.Context) {
	verifications, err := h.verificationService.ListVerifications(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"verifications": verifications})
}

// ReviewVerification handles PUT /api/v1/admin/verifications/:id/review
func (h *VerificationHandler) ReviewVerification(c *gin.Context) {
	verificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid verification id",
		})
		return
	}

	var req ReviewVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	if err := h.verificationService.Review(verificationID, req.Decision, req.Notes); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SignedDocumentURL handles GET /api/v1/admin/verifications/:id/documents/signed-url
func (h *VerificationHandler) SignedDocumentURL(c *gin.Context) {
	verificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid verification id",
		})
		return
	}

	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "path query parameter is required",
		})
		return
	}

	url, err := h.verificationService.SignedDocumentURL(c.Request.Context(), verificationID, path)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"signed_url": url})
}

// openUploads opens multipart file headers as upload files and returns a
// closer for all opened handles
func openUploads(headers []*multipart.FileHeader) ([]services.UploadFile, func(), error) {
	files := make([]services.UploadFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))

	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		opened = append(opened, f)
		files = append(files, services.UploadFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        f,
		})
	}

	return files, closeAll, nil
}

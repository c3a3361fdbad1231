package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/services"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

type ImportHandler struct {
	log           *logger.Logger
	importService services.ImportService
}

func NewImportHandler(log *logger.Logger, isvc services.ImportService) *ImportHandler {
	return &ImportHandler{
		log:           log.With("handler", "ImportHandler"),
		importService: isvc,
	}
}

// GET /api/import/health
func (h *ImportHandler) Health(c *gin.Context) {
	if err := h.importService.HealthCheck(c.Request.Context()); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "ocr_unavailable", err)
		return
	}
	RespondOK(c, gin.H{"status": "ok"})
}

// POST /api/contracts/:id/import
// Multipart upload; the document text comes back in an import session ready
// for clause detection.
func (h *ImportHandler) ExtractDocument(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	defer file.Close()

	session, err := h.importService.ExtractDocument(c.Request.Context(), id, fileHeader.Filename, file)
	if err != nil {
		RespondErrorAuto(c, err)
		return
	}
	RespondOK(c, session)
}

type detectRequest struct {
	Session       *services.ImportSession `json:"session" binding:"required"`
	ConditionType string                  `json:"condition_type"`
}

// POST /api/contracts/:id/import/detect
func (h *ImportHandler) DetectClauses(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	req.Session.ContractID = id
	if req.ConditionType == "" {
		req.ConditionType = types.ConditionGeneral
	}
	RespondOK(c, h.importService.DetectClauses(req.Session, req.ConditionType))
}

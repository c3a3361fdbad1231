package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/services"
)

type AnalysisHandler struct {
	log             *logger.Logger
	analysisService services.AnalysisService
}

func NewAnalysisHandler(log *logger.Logger, asvc services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		log:             log.With("handler", "AnalysisHandler"),
		analysisService: asvc,
	}
}

// POST /api/clauses/:clauseId/analyze
func (h *AnalysisHandler) AnalyzeClause(c *gin.Context) {
	clauseID, err := uuid.Parse(c.Param("clauseId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	result, err := h.analysisService.AnalyzeClause(c.Request.Context(), clauseID)
	if err != nil {
		RespondErrorAuto(c, err)
		return
	}
	RespondOK(c, result)
}

// POST /api/contracts/:id/analyze
// Per-clause failures are reported in the body, not as an HTTP error.
func (h *AnalysisHandler) AnalyzeContract(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	result, err := h.analysisService.AnalyzeContract(c.Request.Context(), id)
	if err != nil {
		RespondErrorAuto(c, err)
		return
	}
	RespondOK(c, result)
}

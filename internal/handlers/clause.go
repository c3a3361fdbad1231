package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/services"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

type ClauseHandler struct {
	log           *logger.Logger
	clauseService services.ClauseService
	autosaver     *services.Autosaver
}

func NewClauseHandler(log *logger.Logger, clsvc services.ClauseService, autosaver *services.Autosaver) *ClauseHandler {
	return &ClauseHandler{
		log:           log.With("handler", "ClauseHandler"),
		clauseService: clsvc,
		autosaver:     autosaver,
	}
}

// GET /api/contracts/:id/clauses?grouped=1&highlight=kw1,kw2
func (h *ClauseHandler) ListClauses(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	if c.Query("grouped") == "1" {
		var keywords []string
		if raw := c.Query("highlight"); raw != "" {
			keywords = strings.Split(raw, ",")
		}
		groups, err := h.clauseService.GetGrouped(c.Request.Context(), id, keywords)
		if err != nil {
			RespondErrorAuto(c, err)
			return
		}
		RespondOK(c, groups)
		return
	}
	clauses, err := h.clauseService.GetClauses(c.Request.Context(), id)
	if err != nil {
		RespondErrorAuto(c, err)
		return
	}
	RespondOK(c, clauses)
}

// PATCH /api/clauses/:clauseId
// Inline edit. With ?autosave=1 the write is debounced instead of immediate.
func (h *ClauseHandler) UpdateClause(c *gin.Context) {
	clauseID, err := uuid.Parse(c.Param("clauseId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	var patch services.ClausePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	if c.Query("autosave") == "1" {
		h.autosaver.Schedule(clauseID, patch)
		RespondOK(c, gin.H{"scheduled": clauseID})
		return
	}

	updated, err := h.clauseService.UpdateClause(c.Request.Context(), clauseID, patch)
	if err != nil {
		RespondErrorAuto(c, err)
		return
	}
	RespondOK(c, updated)
}

// POST /api/clauses/:clauseId/flush
// Force a pending autosave through immediately.
func (h *ClauseHandler) FlushClause(c *gin.Context) {
	clauseID, err := uuid.Parse(c.Param("clauseId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	h.autosaver.Flush(clauseID)
	RespondOK(c, gin.H{"flushed": clauseID})
}

type importDetectedRequest struct {
	Clauses []*types.Clause `json:"clauses" binding:"required"`
}

// POST /api/contracts/:id/clauses/import
// Persist reviewed bulk-detection results, merged per parent group.
func (h *ClauseHandler) ImportDetected(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	var req importDetectedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	stored, err := h.clauseService.ImportDetected(c.Request.Context(), id, req.Clauses)
	if err != nil {
		RespondErrorAuto(c, err)
		return
	}
	RespondOK(c, stored)
}

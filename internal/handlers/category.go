package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clausedesk/clausedesk-backend/internal/category"
	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/services"
)

type CategoryHandler struct {
	log             *logger.Logger
	categoryService services.CategoryService
}

func NewCategoryHandler(log *logger.Logger, catsvc services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		log:             log.With("handler", "CategoryHandler"),
		categoryService: catsvc,
	}
}

// respondResult renders an engine result: success payloads carry the message,
// failures go through the taxonomy mapping.
func respondResult(c *gin.Context, res category.Result) {
	if !res.Success {
		RespondErrorAuto(c, res.Err)
		return
	}
	RespondOK(c, gin.H{"message": res.Message})
}

type categoryNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// POST /api/contracts/:id/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	var req categoryNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	respondResult(c, h.categoryService.CreateCategory(c.Request.Context(), id, req.Name))
}

type renameCategoryRequest struct {
	NewName string `json:"new_name" binding:"required"`
}

// PATCH /api/contracts/:id/categories/:name
func (h *CategoryHandler) RenameCategory(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	var req renameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	respondResult(c, h.categoryService.RenameCategory(c.Request.Context(), id, c.Param("name"), req.NewName))
}

// DELETE /api/contracts/:id/categories/:name
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	respondResult(c, h.categoryService.DeleteCategory(c.Request.Context(), id, c.Param("name")))
}

// GET /api/contracts/:id/categories/:name
func (h *CategoryHandler) ShowCategory(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	numbers, res := h.categoryService.ShowCategory(c.Request.Context(), id, c.Param("name"))
	if !res.Success {
		RespondErrorAuto(c, res.Err)
		return
	}
	RespondOK(c, gin.H{"name": c.Param("name"), "clause_numbers": numbers})
}

type assignClauseRequest struct {
	ClauseNumber string `json:"clause_number" binding:"required"`
	Category     string `json:"category" binding:"required"`
}

// POST /api/contracts/:id/categories/assign
func (h *CategoryHandler) AssignClause(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	var req assignClauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	respondResult(c, h.categoryService.AssignClause(c.Request.Context(), id, req.ClauseNumber, req.Category))
}

// POST /api/contracts/:id/categories/unassign
func (h *CategoryHandler) UnassignClause(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	var req assignClauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	respondResult(c, h.categoryService.UnassignClause(c.Request.Context(), id, req.ClauseNumber, req.Category))
}

type bulkAssignRequest struct {
	ClauseNumbers []string `json:"clause_numbers" binding:"required"`
	Category      string   `json:"category" binding:"required"`
}

// POST /api/contracts/:id/categories/bulk-assign
// Partial success: the response carries per-item counts and failures.
func (h *CategoryHandler) BulkAssign(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	var req bulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	res, err := h.categoryService.BulkAssign(c.Request.Context(), id, req.ClauseNumbers, req.Category)
	if err != nil {
		RespondErrorAuto(c, err)
		return
	}
	RespondOK(c, res)
}

type reorderRequest struct {
	Names []string `json:"names" binding:"required"`
}

// PUT /api/contracts/:id/categories/order
func (h *CategoryHandler) Reorder(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	respondResult(c, h.categoryService.Reorder(c.Request.Context(), id, req.Names))
}

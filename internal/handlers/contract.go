package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/section"
	"github.com/clausedesk/clausedesk-backend/internal/services"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

type ContractHandler struct {
	log             *logger.Logger
	contractService services.ContractService
	clauseService   services.ClauseService
}

func NewContractHandler(log *logger.Logger, csvc services.ContractService, clsvc services.ClauseService) *ContractHandler {
	return &ContractHandler{
		log:             log.With("handler", "ContractHandler"),
		contractService: csvc,
		clauseService:   clsvc,
	}
}

func contractIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return uuid.Nil, false
	}
	return id, true
}

type createContractRequest struct {
	Name string `json:"name" binding:"required"`
}

// POST /api/contracts
func (h *ContractHandler) CreateContract(c *gin.Context) {
	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	contract, err := h.contractService.Create(c.Request.Context(), req.Name)
	if err != nil {
		RespondErrorAuto(c, err)
		return
	}
	RespondOK(c, contract)
}

// GET /api/contracts
func (h *ContractHandler) ListContracts(c *gin.Context) {
	contracts, err := h.contractService.List(c.Request.Context())
	if err != nil {
		RespondErrorAuto(c, err)
		return
	}
	RespondOK(c, contracts)
}

// GET /api/contracts/:id
func (h *ContractHandler) GetContract(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	record, err := h.contractService.Load(c.Request.Context(), id)
	if err != nil {
		RespondErrorAuto(c, err)
		return
	}
	RespondOK(c, record)
}

// DELETE /api/contracts/:id
func (h *ContractHandler) DeleteContract(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	if err := h.contractService.Delete(c.Request.Context(), id); err != nil {
		RespondErrorAuto(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// GET /api/contracts/:id/unified?sort=default|status|chapter|category
func (h *ContractHandler) GetUnifiedView(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	mode := section.SortMode(c.DefaultQuery("sort", string(section.SortDefault)))
	items, err := h.clauseService.GetUnified(c.Request.Context(), id, mode)
	if err != nil {
		RespondErrorAuto(c, err)
		return
	}
	RespondOK(c, items)
}

type splitRequest struct {
	Items []*types.Clause `json:"items" binding:"required"`
}

// POST /api/contracts/:id/split
// Reconcile the edited unified view back into General/Particular and persist.
func (h *ContractHandler) SplitAndSave(c *gin.Context) {
	id, ok := contractIDParam(c)
	if !ok {
		return
	}
	var req splitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	res, err := h.clauseService.SplitAndSave(c.Request.Context(), id, req.Items)
	if err != nil {
		RespondErrorAuto(c, err)
		return
	}
	RespondOK(c, res)
}

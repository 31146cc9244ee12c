// internal/handlers/contract/contract_handler.go
package contract

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"helios-service/internal/domain/contract"
	"helios-service/internal/pkg/response"
	service "helios-service/internal/service/contract"
)

type ContractHandler struct {
	contractService *service.ContractService
}

func NewContractHandler(contractService *service.ContractService) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
	}
}

// CreateContract drafts a new contract with a generated contract number
func (h *ContractHandler) CreateContract(c *gin.Context) {
	var req contract.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.contractService.CreateContract(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create contract", err)
		return
	}

	response.Success(c, http.StatusCreated, "contract created successfully", result)
}

// GetContract retrieves a contract by ID
func (h *ContractHandler) GetContract(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid contract ID", err)
		return
	}

	result, err := h.contractService.GetContract(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "contract not found", err)
		return
	}

	response.Success(c, http.StatusOK, "contract retrieved", result)
}

// UpdateContract updates contract fields
func (h *ContractHandler) UpdateContract(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid contract ID", err)
		return
	}

	var req contract.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.contractService.UpdateContract(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update contract", err)
		return
	}

	response.Success(c, http.StatusOK, "contract updated", result)
}

// SignContract marks the contract as signed
func (h *ContractHandler) SignContract(c *gin.Context) {
	h.mutate(c, "contract signed", h.contractService.Sign)
}

// ActivateContract activates a signed contract
func (h *ContractHandler) ActivateContract(c *gin.Context) {
	h.mutate(c, "contract activated", h.contractService.Activate)
}

// CompleteContract marks the contract as fulfilled
func (h *ContractHandler) CompleteContract(c *gin.Context) {
	h.mutate(c, "contract completed", h.contractService.Complete)
}

// CancelContract cancels the contract
func (h *ContractHandler) CancelContract(c *gin.Context) {
	h.mutate(c, "contract cancelled", h.contractService.Cancel)
}

// TransitionStatus moves the contract through its lifecycle
func (h *ContractHandler) TransitionStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid contract ID", err)
		return
	}

	var req contract.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.contractService.Transition(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, "failed to transition contract", err)
		return
	}

	response.Success(c, http.StatusOK, "contract status updated", result)
}

// AddPayment records a payment against the contract
func (h *ContractHandler) AddPayment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid contract ID", err)
		return
	}

	var req contract.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.contractService.AddPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.FromError(c, "failed to record payment", err)
		return
	}

	response.Success(c, http.StatusOK, "payment recorded", result)
}

// DeleteContract removes a contract
func (h *ContractHandler) DeleteContract(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid contract ID", err)
		return
	}

	if err := h.contractService.DeleteContract(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete contract", err)
		return
	}

	response.Success(c, http.StatusOK, "contract deleted", nil)
}

// ListContracts lists contracts with optional filters
func (h *ContractHandler) ListContracts(c *gin.Context) {
	var filters contract.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.contractService.ListContracts(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list contracts", err)
		return
	}

	response.Success(c, http.StatusOK, "contracts retrieved", result)
}

func (h *ContractHandler) mutate(c *gin.Context, message string, fn func(ctx context.Context, id int64) (*contract.Contract, error)) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid contract ID", err)
		return
	}

	result, err := fn(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to update contract", err)
		return
	}

	response.Success(c, http.StatusOK, message, result)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

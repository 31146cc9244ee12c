// internal/handlers/equipment/equipment_handler.go
package equipment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"helios-service/internal/domain/equipment"
	"helios-service/internal/pkg/response"
	service "helios-service/internal/service/equipment"
)

type EquipmentHandler struct {
	equipmentService *service.EquipmentService
}

func NewEquipmentHandler(equipmentService *service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{
		equipmentService: equipmentService,
	}
}

// CreateEquipment registers a new inventory item
func (h *EquipmentHandler) CreateEquipment(c *gin.Context) {
	var req equipment.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.equipmentService.CreateEquipment(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create equipment", err)
		return
	}

	response.Success(c, http.StatusCreated, "equipment created successfully", result)
}

// GetEquipment retrieves an inventory item by ID
func (h *EquipmentHandler) GetEquipment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid equipment ID", err)
		return
	}

	result, err := h.equipmentService.GetEquipment(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "equipment not found", err)
		return
	}

	response.Success(c, http.StatusOK, "equipment retrieved", result)
}

// UpdateEquipment updates inventory item fields
func (h *EquipmentHandler) UpdateEquipment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid equipment ID", err)
		return
	}

	var req equipment.UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.equipmentService.UpdateEquipment(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update equipment", err)
		return
	}

	response.Success(c, http.StatusOK, "equipment updated", result)
}

// AdjustStock applies a relative stock delta, floored at zero
func (h *EquipmentHandler) AdjustStock(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid equipment ID", err)
		return
	}

	var req equipment.StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.equipmentService.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		response.FromError(c, "failed to adjust stock", err)
		return
	}

	response.Success(c, http.StatusOK, "stock adjusted", result)
}

// DeleteEquipment removes an inventory item
func (h *EquipmentHandler) DeleteEquipment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid equipment ID", err)
		return
	}

	if err := h.equipmentService.DeleteEquipment(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete equipment", err)
		return
	}

	response.Success(c, http.StatusOK, "equipment deleted", nil)
}

// ListEquipment lists inventory with optional filters
func (h *EquipmentHandler) ListEquipment(c *gin.Context) {
	var filters equipment.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.equipmentService.ListEquipment(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list equipment", err)
		return
	}

	response.Success(c, http.StatusOK, "equipment retrieved", result)
}

// ListLowStock lists items at or below their low stock threshold
func (h *EquipmentHandler) ListLowStock(c *gin.Context) {
	low := true
	result, err := h.equipmentService.ListEquipment(c.Request.Context(), &equipment.ListFilters{LowStock: &low})
	if err != nil {
		response.FromError(c, "failed to list low stock equipment", err)
		return
	}

	response.Success(c, http.StatusOK, "low stock equipment retrieved", result)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

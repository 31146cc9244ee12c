// internal/handlers/customer/customer_handler.go
package customer

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"helios-service/internal/domain/customer"
	"helios-service/internal/pkg/response"
	service "helios-service/internal/service/customer"
)

type CustomerHandler struct {
	customerService *service.CustomerService
}

func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomer creates a new customer
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.customerService.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create customer", err)
		return
	}

	response.Success(c, http.StatusCreated, "customer created successfully", result)
}

// GetCustomer retrieves a customer by ID
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer ID", err)
		return
	}

	result, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "customer not found", err)
		return
	}

	response.Success(c, http.StatusOK, "customer retrieved", result)
}

// UpdateCustomer updates customer fields
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer ID", err)
		return
	}

	var req customer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.customerService.UpdateCustomer(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer updated", result)
}

// TransitionLead moves the customer through the sales pipeline
func (h *CustomerHandler) TransitionLead(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer ID", err)
		return
	}

	var req customer.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.customerService.TransitionLead(c.Request.Context(), id, req.LeadStatus)
	if err != nil {
		response.FromError(c, "failed to transition lead", err)
		return
	}

	response.Success(c, http.StatusOK, "lead status updated", result)
}

// DeleteCustomer removes a customer and its dependent records
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer ID", err)
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer deleted", nil)
}

// ListCustomers lists customers with optional filters
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var filters customer.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list customers", err)
		return
	}

	response.Success(c, http.StatusOK, "customers retrieved", result)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

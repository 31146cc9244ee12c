// internal/handlers/installation/installation_handler.go
package installation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"helios-service/internal/domain/installation"
	"helios-service/internal/pkg/response"
	service "helios-service/internal/service/installation"
)

type InstallationHandler struct {
	installationService *service.InstallationService
}

func NewInstallationHandler(installationService *service.InstallationService) *InstallationHandler {
	return &InstallationHandler{
		installationService: installationService,
	}
}

// CreateInstallation schedules a new installation
func (h *InstallationHandler) CreateInstallation(c *gin.Context) {
	var req installation.CreateInstallationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.installationService.CreateInstallation(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create installation", err)
		return
	}

	response.Success(c, http.StatusCreated, "installation scheduled", result)
}

// GetInstallation retrieves an installation by ID
func (h *InstallationHandler) GetInstallation(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid installation ID", err)
		return
	}

	result, err := h.installationService.GetInstallation(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "installation not found", err)
		return
	}

	response.Success(c, http.StatusOK, "installation retrieved", result)
}

// UpdateInstallation updates installation fields
func (h *InstallationHandler) UpdateInstallation(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid installation ID", err)
		return
	}

	var req installation.UpdateInstallationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.installationService.UpdateInstallation(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update installation", err)
		return
	}

	response.Success(c, http.StatusOK, "installation updated", result)
}

// StartInstallation marks the crew on site
func (h *InstallationHandler) StartInstallation(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid installation ID", err)
		return
	}

	result, err := h.installationService.Start(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to start installation", err)
		return
	}

	response.Success(c, http.StatusOK, "installation started", result)
}

// CompleteInstallation closes out the installation with crew notes
func (h *InstallationHandler) CompleteInstallation(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid installation ID", err)
		return
	}

	var req installation.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.installationService.Complete(c.Request.Context(), id, req.Notes)
	if err != nil {
		response.FromError(c, "failed to complete installation", err)
		return
	}

	response.Success(c, http.StatusOK, "installation completed", result)
}

// UpdateProgress records the crew's completion percentage
func (h *InstallationHandler) UpdateProgress(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid installation ID", err)
		return
	}

	var req installation.ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.installationService.UpdateProgress(c.Request.Context(), id, req.CompletionPct)
	if err != nil {
		response.FromError(c, "failed to update progress", err)
		return
	}

	response.Success(c, http.StatusOK, "progress updated", result)
}

// TransitionStatus moves the installation through its lifecycle
func (h *InstallationHandler) TransitionStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid installation ID", err)
		return
	}

	var req installation.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.installationService.Transition(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, "failed to transition installation", err)
		return
	}

	response.Success(c, http.StatusOK, "installation status updated", result)
}

// DeleteInstallation removes an installation
func (h *InstallationHandler) DeleteInstallation(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid installation ID", err)
		return
	}

	if err := h.installationService.DeleteInstallation(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete installation", err)
		return
	}

	response.Success(c, http.StatusOK, "installation deleted", nil)
}

// ListInstallations lists installations with optional filters
func (h *InstallationHandler) ListInstallations(c *gin.Context) {
	var filters installation.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.installationService.ListInstallations(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list installations", err)
		return
	}

	response.Success(c, http.StatusOK, "installations retrieved", result)
}

// ListUpcoming lists installations scheduled in the next N days (?days=7)
func (h *InstallationHandler) ListUpcoming(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	result, err := h.installationService.Upcoming(c.Request.Context(), days)
	if err != nil {
		response.FromError(c, "failed to list upcoming installations", err)
		return
	}

	response.Success(c, http.StatusOK, "upcoming installations retrieved", result)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

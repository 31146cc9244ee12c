// internal/handlers/job/job_handler.go
package job

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"helios-service/internal/domain/job"
	"helios-service/internal/pkg/response"
	service "helios-service/internal/service/job"
)

type JobHandler struct {
	jobService *service.JobService
}

func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobService,
	}
}

// CreateJob creates a new solar job
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req job.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.jobService.CreateJob(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create job", err)
		return
	}

	response.Success(c, http.StatusCreated, "job created successfully", result)
}

// GetJob retrieves a job by ID
func (h *JobHandler) GetJob(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid job ID", err)
		return
	}

	result, err := h.jobService.GetJob(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "job not found", err)
		return
	}

	response.Success(c, http.StatusOK, "job retrieved", result)
}

// UpdateJob updates job fields
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid job ID", err)
		return
	}

	var req job.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.jobService.UpdateJob(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update job", err)
		return
	}

	response.Success(c, http.StatusOK, "job updated", result)
}

// TransitionStatus moves the job through its lifecycle
func (h *JobHandler) TransitionStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid job ID", err)
		return
	}

	var req job.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.jobService.TransitionStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, "failed to transition job", err)
		return
	}

	response.Success(c, http.StatusOK, "job status updated", result)
}

// DeleteJob removes a job, its installations, and detaches its contracts
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid job ID", err)
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete job", err)
		return
	}

	response.Success(c, http.StatusOK, "job deleted", nil)
}

// ListJobs lists jobs with optional filters
func (h *JobHandler) ListJobs(c *gin.Context) {
	var filters job.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.jobService.ListJobs(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list jobs", err)
		return
	}

	response.Success(c, http.StatusOK, "jobs retrieved", result)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

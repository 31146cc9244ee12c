// internal/handlers/stats/stats_handler.go
package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helios-service/internal/pkg/response"
	customersvc "helios-service/internal/service/customer"
	equipmentsvc "helios-service/internal/service/equipment"
	jobsvc "helios-service/internal/service/job"
)

type StatsHandler struct {
	jobService       *jobsvc.JobService
	equipmentService *equipmentsvc.EquipmentService
	customerService  *customersvc.CustomerService
}

func NewStatsHandler(jobService *jobsvc.JobService, equipmentService *equipmentsvc.EquipmentService, customerService *customersvc.CustomerService) *StatsHandler {
	return &StatsHandler{
		jobService:       jobService,
		equipmentService: equipmentService,
		customerService:  customerService,
	}
}

// JobStats reports pipeline counts, revenue and completion rate over all jobs
func (h *StatsHandler) JobStats(c *gin.Context) {
	result, err := h.jobService.Statistics(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to compute job statistics", err)
		return
	}
	response.Success(c, http.StatusOK, "job statistics", result)
}

// EquipmentStats reports inventory value and stock health
func (h *StatsHandler) EquipmentStats(c *gin.Context) {
	result, err := h.equipmentService.Statistics(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to compute equipment statistics", err)
		return
	}
	response.Success(c, http.StatusOK, "equipment statistics", result)
}

// LeadStats reports the sales pipeline breakdown
func (h *StatsHandler) LeadStats(c *gin.Context) {
	result, err := h.customerService.LeadStats(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to compute lead statistics", err)
		return
	}
	response.Success(c, http.StatusOK, "lead statistics", result)
}

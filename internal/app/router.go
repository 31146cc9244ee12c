// internal/app/router.go
package app

import (
	"github.com/gin-gonic/gin"

	authHandler "helios-service/internal/handlers/auth"
	contractHandler "helios-service/internal/handlers/contract"
	customerHandler "helios-service/internal/handlers/customer"
	equipmentHandler "helios-service/internal/handlers/equipment"
	installationHandler "helios-service/internal/handlers/installation"
	jobHandler "helios-service/internal/handlers/job"
	statsHandler "helios-service/internal/handlers/stats"
	vendorHandler "helios-service/internal/handlers/vendor"
	"helios-service/internal/middleware"
)

type Handlers struct {
	AuthHandler         *authHandler.AuthHandler
	CustomerHandler     *customerHandler.CustomerHandler
	JobHandler          *jobHandler.JobHandler
	InstallationHandler *installationHandler.InstallationHandler
	EquipmentHandler    *equipmentHandler.EquipmentHandler
	VendorHandler       *vendorHandler.VendorHandler
	ContractHandler     *contractHandler.ContractHandler
	StatsHandler        *statsHandler.StatsHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.POST("/logout-all", h.AuthHandler.LogoutAll)
	}

	// ==================== Customers ====================
	customers := api.Group("/customers")
	customers.Use(h.AuthMiddleware.Auth())
	{
		customers.GET("", h.CustomerHandler.ListCustomers)
		customers.GET("/:id", h.CustomerHandler.GetCustomer)
		customers.POST("", h.CustomerHandler.CreateCustomer)
		customers.PUT("/:id", h.CustomerHandler.UpdateCustomer)
		customers.PUT("/:id/lead-status", h.CustomerHandler.TransitionLead)
		customers.DELETE("/:id", h.CustomerHandler.DeleteCustomer)
	}

	// ==================== Jobs ====================
	jobs := api.Group("/jobs")
	jobs.Use(h.AuthMiddleware.Auth())
	{
		jobs.GET("", h.JobHandler.ListJobs)
		jobs.GET("/:id", h.JobHandler.GetJob)
		jobs.POST("", h.JobHandler.CreateJob)
		jobs.PUT("/:id", h.JobHandler.UpdateJob)
		jobs.PUT("/:id/status", h.JobHandler.TransitionStatus)
		jobs.DELETE("/:id", h.JobHandler.DeleteJob)
	}

	// ==================== Installations ====================
	installations := api.Group("/installations")
	installations.Use(h.AuthMiddleware.Auth())
	{
		installations.GET("", h.InstallationHandler.ListInstallations)
		installations.GET("/upcoming", h.InstallationHandler.ListUpcoming)
		installations.GET("/:id", h.InstallationHandler.GetInstallation)
		installations.POST("", h.InstallationHandler.CreateInstallation)
		installations.PUT("/:id", h.InstallationHandler.UpdateInstallation)
		installations.PUT("/:id/status", h.InstallationHandler.TransitionStatus)
		installations.PUT("/:id/progress", h.InstallationHandler.UpdateProgress)
		installations.POST("/:id/start", h.InstallationHandler.StartInstallation)
		installations.POST("/:id/complete", h.InstallationHandler.CompleteInstallation)
		installations.DELETE("/:id", h.InstallationHandler.DeleteInstallation)
	}

	// ==================== Equipment ====================
	equipment := api.Group("/equipment")
	equipment.Use(h.AuthMiddleware.Auth())
	{
		equipment.GET("", h.EquipmentHandler.ListEquipment)
		equipment.GET("/low-stock", h.EquipmentHandler.ListLowStock)
		equipment.GET("/:id", h.EquipmentHandler.GetEquipment)
		equipment.POST("", h.EquipmentHandler.CreateEquipment)
		equipment.PUT("/:id", h.EquipmentHandler.UpdateEquipment)
		equipment.PUT("/:id/stock", h.EquipmentHandler.AdjustStock)
		equipment.DELETE("/:id", h.EquipmentHandler.DeleteEquipment)
	}

	// ==================== Vendors ====================
	vendors := api.Group("/vendors")
	vendors.Use(h.AuthMiddleware.Auth())
	{
		vendors.GET("", h.VendorHandler.ListVendors)
		vendors.GET("/:id", h.VendorHandler.GetVendor)
		vendors.POST("", h.VendorHandler.CreateVendor)
		vendors.PUT("/:id", h.VendorHandler.UpdateVendor)
		vendors.PUT("/:id/rating", h.VendorHandler.UpdateRating)
		vendors.DELETE("/:id", h.VendorHandler.DeleteVendor)
	}

	// ==================== Contracts ====================
	contracts := api.Group("/contracts")
	contracts.Use(h.AuthMiddleware.Auth())
	{
		contracts.GET("", h.ContractHandler.ListContracts)
		contracts.GET("/:id", h.ContractHandler.GetContract)
		contracts.POST("", h.ContractHandler.CreateContract)
		contracts.PUT("/:id", h.ContractHandler.UpdateContract)
		contracts.PUT("/:id/status", h.ContractHandler.TransitionStatus)
		contracts.POST("/:id/sign", h.ContractHandler.SignContract)
		contracts.POST("/:id/activate", h.ContractHandler.ActivateContract)
		contracts.POST("/:id/complete", h.ContractHandler.CompleteContract)
		contracts.POST("/:id/cancel", h.ContractHandler.CancelContract)
		contracts.POST("/:id/payments", h.ContractHandler.AddPayment)
		contracts.DELETE("/:id", h.ContractHandler.DeleteContract)
	}

	// ==================== Statistics ====================
	stats := api.Group("/stats")
	stats.Use(h.AuthMiddleware.Auth())
	{
		stats.GET("/jobs", h.StatsHandler.JobStats)
		stats.GET("/equipment", h.StatsHandler.EquipmentStats)
		stats.GET("/leads", h.StatsHandler.LeadStats)
	}
}

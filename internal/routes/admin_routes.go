package routes

import (
	"ridebook/internal/controllers"
	"ridebook/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.GET("/bookings", controllers.ListBookings)
		admin.PATCH("/bookings/:id/status", controllers.UpdateBookingStatus)
		admin.POST("/bookings/:id/assign", controllers.AssignDriver)

		admin.GET("/drivers", controllers.ListDrivers)
		admin.GET("/riders", controllers.ListRiders)

		admin.POST("/service-areas", controllers.CreateServiceArea)
		admin.GET("/service-areas", controllers.ListServiceAreas)
		admin.GET("/service-areas/:id", controllers.GetServiceArea)
		admin.PUT("/service-areas/:id", controllers.UpdateServiceArea)
		admin.DELETE("/service-areas/:id", controllers.DeleteServiceArea)
		admin.POST("/service-areas/check", controllers.CheckServiceArea)

		admin.POST("/vehicle-classes", controllers.CreateVehicleClass)
		admin.GET("/vehicle-classes", controllers.ListVehicleClasses)
		admin.PUT("/vehicle-classes/:id", controllers.UpdateVehicleClass)
		admin.DELETE("/vehicle-classes/:id", controllers.DeleteVehicleClass)

		admin.POST("/integrations", controllers.CreateIntegration)
		admin.GET("/integrations", controllers.ListIntegrations)
		admin.PUT("/integrations/:id", controllers.UpdateIntegration)
		admin.DELETE("/integrations/:id", controllers.DeleteIntegration)

		admin.POST("/policies", controllers.CreatePolicyVersion)
		admin.GET("/policies/:slug/versions", controllers.ListPolicyVersions)
		admin.POST("/policies/:id/publish", controllers.PublishPolicy)

		admin.GET("/business-hours", controllers.GetBusinessHours)
		admin.PUT("/business-hours", controllers.PutBusinessHours)

		admin.GET("/reconciliation", controllers.ReconciliationReport)
		admin.POST("/payments/:id/reconcile", controllers.MarkReconciled)

		admin.GET("/ws/events", controllers.AdminEventsWS)
	}
}

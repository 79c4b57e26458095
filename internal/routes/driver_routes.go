package routes

import (
	"ridebook/internal/controllers"
	"ridebook/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DriverRoutes(r *gin.Engine) {
	driver := r.Group("/driver")
	driver.Use(middleware.RequireAuthWithRole("driver"))
	{
		driver.GET("/bookings", controllers.MyAssignedBookings)
		driver.POST("/bookings/:id/start", controllers.StartTrip)
		driver.POST("/bookings/:id/complete", controllers.CompleteTrip)
		driver.POST("/availability", controllers.SetAvailability)
		driver.POST("/location", controllers.PingLocation)
	}
}

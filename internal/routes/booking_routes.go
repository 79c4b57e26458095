package routes

import (
	"ridebook/internal/controllers"
	"ridebook/internal/middleware"

	"github.com/gin-gonic/gin"
)

func BookingRoutes(r *gin.Engine) {
	bookings := r.Group("/api/bookings")
	bookings.Use(middleware.RequireAuthWithRole("rider"))
	{
		bookings.POST("/quote", controllers.QuoteBooking)
		bookings.POST("", controllers.CreateBooking)
		bookings.GET("", controllers.ListMyBookings)
		bookings.GET("/:id", controllers.GetBooking)
		bookings.POST("/:id/cancel", controllers.CancelBooking)
	}
}

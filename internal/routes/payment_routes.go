package routes

import (
	"ridebook/internal/controllers"
	"ridebook/internal/middleware"

	"github.com/gin-gonic/gin"
)

func PaymentRoutes(r *gin.Engine) {
	payments := r.Group("/api/payments")
	payments.Use(middleware.RequireAuthWithRole("rider"))
	{
		payments.POST("/intent", controllers.CreatePaymentIntent)
		payments.GET("/:booking_id", controllers.GetBookingPayment)
	}

	// Stripe posts here with a signed raw body; no auth middleware.
	r.POST("/api/webhooks/stripe", controllers.StripeWebhook)
}

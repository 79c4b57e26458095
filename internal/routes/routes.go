package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ridebook/internal/controllers"
	"ridebook/internal/middleware"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(ginlogger.SetLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimit())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public catalog and legal text
	r.GET("/api/vehicle-classes", controllers.ListVehicleClasses)
	r.GET("/api/policies/:slug", controllers.GetPublishedPolicy)

	AuthRoutes(r)
	BookingRoutes(r)
	PaymentRoutes(r)
	DriverRoutes(r)
	AdminRoutes(r)

	return r
}

package main

import (
	"log"
	"net/http"

	"ridebook/internal/config"
	"ridebook/internal/controllers"
	"ridebook/internal/logger"
	"ridebook/internal/middleware"
	"ridebook/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Stripe client and rate limiter need the env loaded by InitDB
	controllers.InitPayments()
	middleware.InitRateLimiter()

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := config.ListenAddr()
	log.Printf("server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

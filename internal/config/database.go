package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ridebook/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB initializes the database connection using environment variables
// and migrates the schema.
func InitDB() {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	// Load environment variables (with defaults)
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "password")
	dbname := getEnv("DB_NAME", "ridebook")
	sslmode := getEnv("DB_SSLMODE", "disable")
	timezone := getEnv("DB_TIMEZONE", "UTC")

	// Build Data Source Name
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	// Open GORM connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Driver{},
		&models.AdminUser{},
		&models.Booking{},
		&models.Payment{},
		&models.ServiceArea{},
		&models.VehicleClass{},
		&models.Integration{},
		&models.Policy{},
		&models.BusinessHours{},
	)
	if err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	seedVehicleClasses(db)

	// Assign to global
	DB = db
}

// seedVehicleClasses inserts the default vehicle tiers if the table is empty.
func seedVehicleClasses(db *gorm.DB) {
	var count int64
	db.Model(&models.VehicleClass{}).Count(&count)
	if count > 0 {
		return
	}
	defaults := []models.VehicleClass{
		{Name: "sedan", DisplayName: "Sedan", BaseFare: 500, PerKM: 150, UpgradeFee: 0, Capacity: 4, Active: true},
		{Name: "suv", DisplayName: "SUV", BaseFare: 700, PerKM: 200, UpgradeFee: 1500, Capacity: 6, Active: true},
		{Name: "luxury", DisplayName: "Luxury", BaseFare: 1200, PerKM: 300, UpgradeFee: 3500, Capacity: 4, Active: true},
		{Name: "van", DisplayName: "Van", BaseFare: 900, PerKM: 220, UpgradeFee: 2000, Capacity: 8, Active: true},
	}
	if err := db.Create(&defaults).Error; err != nil {
		log.Printf("vehicle class seed failed: %v", err)
	}
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}

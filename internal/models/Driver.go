// internal/models/driver.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Driver struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"unique"` // Foreign key to User
	User          User   `gorm:"foreignKey:UserID" json:"-"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	VehiclePlate  string `json:"vehicle_plate"`
	VehicleDesc   string `json:"vehicle_desc"`

	Available  bool      `json:"available" gorm:"default:false"`
	Rating     float64   `json:"rating" gorm:"default:5"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	LastPingAt time.Time `json:"last_ping_at"`
	// DO NOT include Email, Password, or Role here. They are in the User model.
}

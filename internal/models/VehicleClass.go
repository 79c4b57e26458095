// internal/models/vehicleclass.go
package models

import (
	"gorm.io/gorm"
)

// VehicleClass is a bookable vehicle tier with its fare and upgrade pricing.
// Amounts are minor units.
type VehicleClass struct {
	gorm.Model
	Name        string `json:"name" gorm:"uniqueIndex"` // "sedan", "suv", "luxury", "van"
	DisplayName string `json:"display_name"`
	BaseFare    int64  `json:"base_fare"`
	PerKM       int64  `json:"per_km"`
	UpgradeFee  int64  `json:"upgrade_fee"`
	Capacity    int    `json:"capacity"`
	Active      bool   `json:"active" gorm:"default:true"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses. A booking moves pending -> confirmed -> assigned ->
// in_progress -> completed and may be cancelled from any non-terminal state.
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingAssigned   = "assigned"
	BookingInProgress = "in_progress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"
)

// Booking represents a customer's scheduled ride request.
// All amounts are integer minor units (cents).
type Booking struct {
	gorm.Model
	Reference string `json:"reference" gorm:"uniqueIndex"`

	RiderID  uint    `json:"rider_id" gorm:"index"`
	Rider    User    `gorm:"foreignKey:RiderID" json:"-"`
	DriverID *uint   `json:"driver_id" gorm:"index"`
	Driver   *Driver `gorm:"foreignKey:DriverID" json:"driver,omitempty"`

	PickupAddress  string    `json:"pickup_address" binding:"required"`
	PickupLat      float64   `json:"pickup_lat"`
	PickupLng      float64   `json:"pickup_lng"`
	DropoffAddress string    `json:"dropoff_address" binding:"required"`
	DropoffLat     float64   `json:"dropoff_lat"`
	DropoffLng     float64   `json:"dropoff_lng"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	Passengers     int       `json:"passengers" gorm:"default:1"`
	VehicleClass   string    `json:"vehicle_class"`

	Status string `json:"status" gorm:"default:'pending';index"`

	BaseAmount       int64  `json:"base_amount"`
	EnhancementTotal int64  `json:"enhancement_total"`
	SurchargeAmount  int64  `json:"surcharge_amount"`
	TotalAmount      int64  `json:"total_amount"`
	Currency         string `json:"currency" gorm:"default:'usd'"`

	// Enhancements holds the priced enhancement request as JSON so the
	// breakdown can be recomputed for receipts.
	Enhancements    []byte `json:"-" gorm:"type:jsonb"`
	AdditionalStops int    `json:"additional_stops"`

	Payment *Payment `gorm:"foreignKey:BookingID" json:"payment,omitempty"`
}

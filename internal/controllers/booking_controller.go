package controllers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ridebook/internal/config"
	"ridebook/internal/geofence"
	"ridebook/internal/middleware"
	"ridebook/internal/models"
	"ridebook/internal/pricing"
)

type bookingInput struct {
	PickupAddress  string          `json:"pickup_address" binding:"required"`
	PickupLat      float64         `json:"pickup_lat"`
	PickupLng      float64         `json:"pickup_lng"`
	DropoffAddress string          `json:"dropoff_address" binding:"required"`
	DropoffLat     float64         `json:"dropoff_lat"`
	DropoffLng     float64         `json:"dropoff_lng"`
	ScheduledAt    time.Time       `json:"scheduled_at"`
	Passengers     int             `json:"passengers"`
	VehicleClass   string          `json:"vehicle_class"`
	Currency       string          `json:"currency"`
	Enhancements   pricing.Request `json:"enhancements"`
}

type bookingQuote struct {
	VehicleClass     string            `json:"vehicle_class"`
	DistanceKM       float64           `json:"distance_km"`
	BaseAmount       int64             `json:"base_amount"`
	Enhancements     pricing.Breakdown `json:"enhancements"`
	ServiceArea      string            `json:"service_area,omitempty"`
	SurchargeAmount  int64             `json:"surcharge_amount"`
	TotalAmount      int64             `json:"total_amount"`
	Currency         string            `json:"currency"`
	EnhancementTotal int64             `json:"enhancement_total"`
}

// priceBooking computes the full quote for a booking input: class fare by
// distance, enhancement line items, then the service-area surcharge on
// (base + enhancements).
func priceBooking(in bookingInput) (*bookingQuote, int, error) {
	className := in.VehicleClass
	if className == "" {
		className = "sedan"
	}

	var classes []models.VehicleClass
	if err := config.DB.Where("active = ?", true).Find(&classes).Error; err != nil {
		return nil, http.StatusInternalServerError, err
	}

	var class *models.VehicleClass
	upgradeFees := make(map[string]int64, len(classes))
	for i := range classes {
		upgradeFees[classes[i].Name] = classes[i].UpgradeFee
		if classes[i].Name == className {
			class = &classes[i]
		}
	}
	if class == nil {
		return nil, http.StatusBadRequest, errors.New("unknown vehicle class: " + className)
	}

	distKM := geofence.Haversine(in.PickupLat, in.PickupLng, in.DropoffLat, in.DropoffLng) / 1000.0
	base := class.BaseFare + int64(math.Round(distKM))*class.PerKM

	breakdown, err := pricing.Calculate(base, in.Enhancements, pricing.DefaultRates(), upgradeFees)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	var areas []models.ServiceArea
	if err := config.DB.Where("active = ?", true).Find(&areas).Error; err != nil {
		return nil, http.StatusInternalServerError, err
	}
	area := geofence.Match(in.PickupLat, in.PickupLng, areas)
	surcharge := geofence.Surcharge(area, base+breakdown.Total)

	currency := in.Currency
	if currency == "" {
		currency = "usd"
	}

	q := &bookingQuote{
		VehicleClass:     className,
		DistanceKM:       distKM,
		BaseAmount:       base,
		Enhancements:     breakdown,
		EnhancementTotal: breakdown.Total,
		SurchargeAmount:  surcharge,
		TotalAmount:      base + breakdown.Total + surcharge,
		Currency:         currency,
	}
	if area != nil {
		q.ServiceArea = area.Name
	}
	return q, 0, nil
}

// QuoteBooking prices a prospective booking without persisting anything.
func QuoteBooking(c *gin.Context) {
	var input bookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, status, err := priceBooking(input)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// CreateBooking prices and persists a booking for the authenticated rider.
func CreateBooking(c *gin.Context) {
	var input bookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, status, err := priceBooking(input)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	riderID := middleware.UserID(c)
	enhJSON, _ := json.Marshal(input.Enhancements)

	passengers := input.Passengers
	if passengers <= 0 {
		passengers = 1
	}

	booking := models.Booking{
		Reference:        uuid.NewString(),
		RiderID:          riderID,
		PickupAddress:    input.PickupAddress,
		PickupLat:        input.PickupLat,
		PickupLng:        input.PickupLng,
		DropoffAddress:   input.DropoffAddress,
		DropoffLat:       input.DropoffLat,
		DropoffLng:       input.DropoffLng,
		ScheduledAt:      input.ScheduledAt,
		Passengers:       passengers,
		VehicleClass:     quote.VehicleClass,
		Status:           models.BookingPending,
		BaseAmount:       quote.BaseAmount,
		EnhancementTotal: quote.EnhancementTotal,
		SurchargeAmount:  quote.SurchargeAmount,
		TotalAmount:      quote.TotalAmount,
		Currency:         quote.Currency,
		Enhancements:     enhJSON,
		AdditionalStops:  input.Enhancements.AdditionalStops,
	}

	if err := config.DB.Create(&booking).Error; err != nil {
		logrus.WithError(err).Error("CreateBooking: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create booking: " + err.Error()})
		return
	}

	middleware.BookingsCreated.Inc()
	Hub.Publish("booking_created", gin.H{"reference": booking.Reference, "status": booking.Status, "total": booking.TotalAmount})

	c.JSON(http.StatusCreated, gin.H{"booking": booking, "quote": quote})
}

// ListMyBookings returns the authenticated rider's bookings, newest first.
func ListMyBookings(c *gin.Context) {
	riderID := middleware.UserID(c)

	var bookings []models.Booking
	if err := config.DB.Preload("Driver").Preload("Payment").
		Where("rider_id = ?", riderID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bookings})
}

// GetBooking returns one of the rider's bookings by id.
func GetBooking(c *gin.Context) {
	riderID := middleware.UserID(c)
	id := c.Param("id")

	var booking models.Booking
	if err := config.DB.Preload("Driver").Preload("Payment").
		Where("id = ? AND rider_id = ?", id, riderID).
		First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking, "enhancements": jsonRaw(booking.Enhancements)})
}

// CancelBooking cancels one of the rider's bookings and voids or refunds
// its payment.
func CancelBooking(c *gin.Context) {
	riderID := middleware.UserID(c)
	id := c.Param("id")

	var booking models.Booking
	if err := config.DB.Preload("Payment").
		Where("id = ? AND rider_id = ?", id, riderID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if !canTransition(booking.Status, models.BookingCancelled) {
		c.JSON(http.StatusConflict, gin.H{"error": "booking is already " + booking.Status})
		return
	}

	if booking.Payment != nil && booking.Payment.StripeIntentID != "" {
		switch booking.Payment.Status {
		case models.PaymentSucceeded:
			if err := stripeClient.Refund(booking.Payment.StripeIntentID); err != nil {
				logrus.WithError(err).Error("CancelBooking: refund failed")
				c.JSON(http.StatusBadGateway, gin.H{"error": "refund failed: " + err.Error()})
				return
			}
		case models.PaymentPending:
			if err := stripeClient.Cancel(booking.Payment.StripeIntentID); err != nil {
				logrus.WithError(err).Warn("CancelBooking: intent cancel failed")
			}
		}
	}

	booking.Status = models.BookingCancelled
	if err := config.DB.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not cancel booking"})
		return
	}
	freeAssignedDriver(&booking)

	Hub.Publish("booking_status", gin.H{"reference": booking.Reference, "status": booking.Status})
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// releasesDriver reports whether entering the status frees the assigned
// driver to take new bookings.
func releasesDriver(status string) bool {
	return status == models.BookingCompleted || status == models.BookingCancelled
}

// freeAssignedDriver flips the booking's driver back to available. Called
// after the booking reaches a terminal status.
func freeAssignedDriver(booking *models.Booking) {
	if booking.DriverID == nil {
		return
	}
	if err := config.DB.Model(&models.Driver{}).
		Where("id = ?", *booking.DriverID).
		Update("available", true).Error; err != nil {
		logrus.WithError(err).WithField("driver", *booking.DriverID).Warn("could not free driver")
	}
}

// canTransition validates booking status changes. Completed and cancelled
// are terminal.
func canTransition(from, to string) bool {
	allowed, ok := bookingTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

var bookingTransitions = map[string][]string{
	models.BookingPending:    {models.BookingConfirmed, models.BookingAssigned, models.BookingCancelled},
	models.BookingConfirmed:  {models.BookingAssigned, models.BookingCancelled},
	models.BookingAssigned:   {models.BookingInProgress, models.BookingCancelled},
	models.BookingInProgress: {models.BookingCompleted, models.BookingCancelled},
}

package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ridebook/internal/config"
	"ridebook/internal/middleware"
	"ridebook/internal/models"
)

// driverForUser resolves the Driver row behind the authenticated user.
func driverForUser(c *gin.Context) (*models.Driver, bool) {
	userID := middleware.UserID(c)
	var driver models.Driver
	if err := config.DB.Where("user_id = ?", userID).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "no driver profile for this account"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return &driver, true
}

// MyAssignedBookings lists the driver's active and upcoming bookings.
func MyAssignedBookings(c *gin.Context) {
	driver, ok := driverForUser(c)
	if !ok {
		return
	}

	var bookings []models.Booking
	if err := config.DB.
		Where("driver_id = ? AND status IN ?", driver.ID, []string{models.BookingAssigned, models.BookingInProgress}).
		Order("scheduled_at ASC").
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bookings})
}

// StartTrip moves an assigned booking to in_progress.
func StartTrip(c *gin.Context) {
	driverBookingTransition(c, models.BookingInProgress)
}

// CompleteTrip moves an in_progress booking to completed and frees the driver.
func CompleteTrip(c *gin.Context) {
	driverBookingTransition(c, models.BookingCompleted)
}

func driverBookingTransition(c *gin.Context, to string) {
	driver, ok := driverForUser(c)
	if !ok {
		return
	}
	id := c.Param("id")

	var booking models.Booking
	if err := config.DB.Where("id = ? AND driver_id = ?", id, driver.ID).First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if !canTransition(booking.Status, to) {
		c.JSON(http.StatusConflict, gin.H{"error": "cannot move booking from " + booking.Status + " to " + to})
		return
	}

	booking.Status = to
	if err := config.DB.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update booking"})
		return
	}

	if releasesDriver(to) {
		if err := config.DB.Model(driver).Update("available", true).Error; err != nil {
			logrus.WithError(err).Warn("CompleteTrip: could not free driver")
		}
	}

	Hub.Publish("booking_status", gin.H{"reference": booking.Reference, "status": booking.Status, "driver_id": driver.ID})
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// SetAvailability toggles whether the driver accepts assignments.
func SetAvailability(c *gin.Context) {
	driver, ok := driverForUser(c)
	if !ok {
		return
	}

	var input struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Model(driver).Update("available", *input.Available).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": *input.Available})
}

// PingLocation records the driver's position and feeds the admin event
// stream.
func PingLocation(c *gin.Context) {
	driver, ok := driverForUser(c)
	if !ok {
		return
	}

	var input struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"latitude":     input.Latitude,
		"longitude":    input.Longitude,
		"last_ping_at": now,
	}
	if err := config.DB.Model(driver).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record location"})
		return
	}

	Hub.Publish("driver_location", gin.H{
		"driver_id": driver.ID,
		"latitude":  input.Latitude,
		"longitude": input.Longitude,
		"at":        now,
	})

	c.Status(http.StatusNoContent)
}

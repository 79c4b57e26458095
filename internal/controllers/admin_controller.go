package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ridebook/internal/config"
	"ridebook/internal/models"
)

// ListBookings returns all bookings, optionally filtered by status or rider.
func ListBookings(c *gin.Context) {
	query := config.DB.Preload("Driver").Preload("Payment").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if rider := c.Query("rider_id"); rider != "" {
		query = query.Where("rider_id = ?", rider)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing bookings: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bookings})
}

// UpdateBookingStatus applies an admin-driven status transition.
func UpdateBookingStatus(c *gin.Context) {
	id := c.Param("id")

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if !canTransition(booking.Status, input.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "cannot move booking from " + booking.Status + " to " + input.Status})
		return
	}

	booking.Status = input.Status
	if err := config.DB.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	if releasesDriver(booking.Status) {
		freeAssignedDriver(&booking)
	}

	Hub.Publish("booking_status", gin.H{"reference": booking.Reference, "status": booking.Status})
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// AssignDriver attaches an available driver to a booking and marks the
// booking assigned.
func AssignDriver(c *gin.Context) {
	id := c.Param("id")

	var input struct {
		DriverID uint `json:"driver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if !canTransition(booking.Status, models.BookingAssigned) {
		c.JSON(http.StatusConflict, gin.H{"error": "booking is " + booking.Status + ", cannot assign a driver"})
		return
	}

	var driver models.Driver
	if err := config.DB.First(&driver, input.DriverID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "driver does not exist"})
		return
	}
	if !driver.Available {
		c.JSON(http.StatusConflict, gin.H{"error": "driver is not available"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	booking.DriverID = &driver.ID
	booking.Status = models.BookingAssigned
	if err := tx.Save(&booking).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assign failed: " + err.Error()})
		return
	}
	if err := tx.Model(&driver).Update("available", false).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assign failed: " + err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	logrus.WithFields(logrus.Fields{"booking": booking.Reference, "driver": driver.ID}).Info("driver assigned")
	Hub.Publish("booking_status", gin.H{"reference": booking.Reference, "status": booking.Status, "driver_id": driver.ID})

	config.DB.Preload("Driver").First(&booking, booking.ID)
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// ListDrivers lists driver profiles for the back office.
func ListDrivers(c *gin.Context) {
	query := config.DB.Order("id ASC")
	if c.Query("available") == "true" {
		query = query.Where("available = ?", true)
	}

	var drivers []models.Driver
	if err := query.Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing drivers: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": drivers})
}

// ListRiders lists customer accounts.
func ListRiders(c *gin.Context) {
	var riders []models.User
	if err := config.DB.Where("role = ?", "rider").Find(&riders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing riders: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": riders})
}

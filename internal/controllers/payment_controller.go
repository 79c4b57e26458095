package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ridebook/internal/config"
	"ridebook/internal/middleware"
	"ridebook/internal/models"
)

// CreatePaymentIntent opens a Stripe PaymentIntent for one of the rider's
// bookings and records the pending Payment row. The client secret goes back
// to the frontend for Stripe Elements confirmation.
func CreatePaymentIntent(c *gin.Context) {
	riderID := middleware.UserID(c)

	var input struct {
		BookingID uint `json:"booking_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("Payment").
		Where("id = ? AND rider_id = ?", input.BookingID, riderID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if booking.Status == models.BookingCancelled || booking.Status == models.BookingCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "booking is " + booking.Status})
		return
	}
	if booking.Payment != nil && booking.Payment.Status == models.PaymentSucceeded {
		c.JSON(http.StatusConflict, gin.H{"error": "booking is already paid"})
		return
	}

	var rider models.User
	if err := config.DB.First(&rider, riderID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	intent, err := stripeClient.CreateIntent(booking.TotalAmount, booking.Currency, rider.StripeCustomerID, booking.Reference)
	if err != nil {
		logrus.WithError(err).Error("CreatePaymentIntent: stripe call failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider error: " + err.Error()})
		return
	}

	payment := booking.Payment
	if payment == nil {
		payment = &models.Payment{BookingID: booking.ID}
	}
	payment.Amount = booking.TotalAmount
	payment.Currency = booking.Currency
	payment.Status = models.PaymentPending
	payment.StripeIntentID = intent.ID

	if err := config.DB.Save(payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record payment: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment":       payment,
		"client_secret": intent.ClientSecret,
	})
}

// GetBookingPayment returns the payment state for one of the rider's bookings.
func GetBookingPayment(c *gin.Context) {
	riderID := middleware.UserID(c)
	bookingID := c.Param("booking_id")

	var booking models.Booking
	if err := config.DB.Where("id = ? AND rider_id = ?", bookingID, riderID).First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	var payment models.Payment
	if err := config.DB.Where("booking_id = ?", booking.ID).First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No payment for this booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	stripe "github.com/stripe/stripe-go/v74"

	"ridebook/internal/config"
	"ridebook/internal/middleware"
	"ridebook/internal/models"
)

// StripeWebhook verifies and applies Stripe events. The route reads the raw
// body itself because signature verification needs the exact bytes Stripe
// sent. Unknown event types are acknowledged so Stripe stops retrying.
func StripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read body"})
		return
	}

	event, err := stripeClient.ConstructEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		logrus.WithError(err).Warn("StripeWebhook: signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
			return
		}
		applyIntentSucceeded(&intent)
	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
			return
		}
		applyIntentFailed(&intent)
	case "charge.refunded":
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
			return
		}
		applyChargeRefunded(&charge)
	default:
		logrus.WithField("type", event.Type).Debug("StripeWebhook: ignoring event")
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func applyIntentSucceeded(intent *stripe.PaymentIntent) {
	var payment models.Payment
	if err := config.DB.Where("stripe_intent_id = ?", intent.ID).First(&payment).Error; err != nil {
		logrus.WithField("intent", intent.ID).Warn("StripeWebhook: no local payment for intent")
		return
	}

	payment.Status = models.PaymentSucceeded
	if intent.LatestCharge != nil {
		payment.StripeChargeID = intent.LatestCharge.ID
	}
	if err := config.DB.Save(&payment).Error; err != nil {
		logrus.WithError(err).Error("StripeWebhook: could not update payment")
		return
	}

	// Paid pending bookings become confirmed.
	var booking models.Booking
	if err := config.DB.First(&booking, payment.BookingID).Error; err == nil &&
		booking.Status == models.BookingPending {
		booking.Status = models.BookingConfirmed
		config.DB.Save(&booking)
		Hub.Publish("booking_status", gin.H{"reference": booking.Reference, "status": booking.Status})
	}

	middleware.PaymentsSucceeded.Inc()
	Hub.Publish("payment_update", gin.H{"payment_id": payment.ID, "status": payment.Status})
}

func applyIntentFailed(intent *stripe.PaymentIntent) {
	var payment models.Payment
	if err := config.DB.Where("stripe_intent_id = ?", intent.ID).First(&payment).Error; err != nil {
		return
	}

	payment.Status = models.PaymentFailed
	if intent.LastPaymentError != nil {
		payment.FailureMessage = intent.LastPaymentError.Msg
	}
	if err := config.DB.Save(&payment).Error; err != nil {
		logrus.WithError(err).Error("StripeWebhook: could not update payment")
		return
	}

	middleware.PaymentsFailed.Inc()
	Hub.Publish("payment_update", gin.H{"payment_id": payment.ID, "status": payment.Status})
}

func applyChargeRefunded(charge *stripe.Charge) {
	intentID := ""
	if charge.PaymentIntent != nil {
		intentID = charge.PaymentIntent.ID
	}

	var payment models.Payment
	query := config.DB.Where("stripe_charge_id = ?", charge.ID)
	if intentID != "" {
		query = config.DB.Where("stripe_charge_id = ? OR stripe_intent_id = ?", charge.ID, intentID)
	}
	if err := query.First(&payment).Error; err != nil {
		return
	}

	updates := map[string]interface{}{
		"status":        models.PaymentRefunded,
		"reconciled":    false,
		"reconciled_at": nil,
	}
	if err := config.DB.Model(&payment).Updates(updates).Error; err != nil {
		logrus.WithError(err).Error("StripeWebhook: could not mark refund")
		return
	}

	Hub.Publish("payment_update", gin.H{"payment_id": payment.ID, "status": models.PaymentRefunded, "at": time.Now()})
}

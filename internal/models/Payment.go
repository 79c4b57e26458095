package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentPending   = "pending"
	PaymentSucceeded = "succeeded"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Payment mirrors a Stripe PaymentIntent for a booking. Amount is in
// minor units, matching what was sent to Stripe.
type Payment struct {
	gorm.Model
	BookingID uint    `json:"booking_id" gorm:"index;not null"`
	Booking   Booking `gorm:"foreignKey:BookingID" json:"-"`

	Amount   int64  `json:"amount"`
	Currency string `json:"currency" gorm:"default:'usd'"`
	Status   string `json:"status" gorm:"default:'pending'"`

	StripeIntentID string `json:"stripe_intent_id" gorm:"uniqueIndex"`
	StripeChargeID string `json:"stripe_charge_id"`
	FailureMessage string `json:"failure_message,omitempty"`

	Reconciled   bool       `json:"reconciled" gorm:"default:false"`
	ReconciledAt *time.Time `json:"reconciled_at,omitempty"`
}

package payments

import (
	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/balancetransaction"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"
	"github.com/stripe/stripe-go/v74/webhook"

	"ridebook/internal/config"
)

// Client is a thin wrapper around stripe-go for PaymentIntent flows,
// webhook verification and balance snapshots.
type Client struct {
	webhookSecret string
}

// NewClient initializes stripe-go with the configured secret key.
func NewClient() *Client {
	stripe.Key = config.StripeSecretKey()
	return &Client{webhookSecret: config.StripeWebhookSecret()}
}

// CreateIntent opens a PaymentIntent for a booking. The booking reference
// rides along as metadata so webhook events can be tied back to a booking.
func (c *Client) CreateIntent(amount int64, currency, customerID, bookingRef string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	if customerID != "" {
		params.Customer = stripe.String(customerID)
	}
	params.AddMetadata("booking_reference", bookingRef)
	return paymentintent.New(params)
}

// Cancel releases an unconfirmed PaymentIntent.
func (c *Client) Cancel(intentID string) error {
	_, err := paymentintent.Cancel(intentID, nil)
	return err
}

// Refund refunds the charge behind a succeeded PaymentIntent.
func (c *Client) Refund(intentID string) error {
	_, err := refund.New(&stripe.RefundParams{PaymentIntent: stripe.String(intentID)})
	return err
}

// ConstructEvent verifies a webhook payload against its signature header.
func (c *Client) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
}

// BalanceSnapshot lists recent charge balance transactions as ProviderTxn
// rows for reconciliation.
func (c *Client) BalanceSnapshot(limit int64) ([]ProviderTxn, error) {
	params := &stripe.BalanceTransactionListParams{Type: stripe.String("charge")}
	params.Limit = stripe.Int64(limit)

	var out []ProviderTxn
	it := balancetransaction.List(params)
	for it.Next() {
		bt := it.BalanceTransaction()
		src := ""
		if bt.Source != nil {
			src = bt.Source.ID
		}
		out = append(out, ProviderTxn{
			ChargeID: src,
			Amount:   bt.Amount,
			Currency: string(bt.Currency),
			Created:  bt.Created,
		})
	}
	return out, it.Err()
}

package controllers

import (
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"ridebook/internal/payments"
)

var stripeClient *payments.Client

// InitPayments wires the shared Stripe client. Called from main after the
// environment has been loaded.
func InitPayments() {
	stripeClient = payments.NewClient()
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation. The postgres driver rides on pgx, so these surface as
// *pgconn.PgError.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// jsonRaw exposes stored JSON columns without double-encoding.
func jsonRaw(b []byte) json.RawMessage {
	if len(b) == 0 {
		return json.RawMessage("null")
	}
	return json.RawMessage(b)
}

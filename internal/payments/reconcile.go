package payments

import (
	"ridebook/internal/models"
)

// Reconciliation compares a provider balance snapshot against local
// payment rows. A discrepancy is raised when a charge exists on one side
// only, or when amounts disagree by more than the tolerance.

const (
	MissingLocal   = "missing_local"
	MissingRemote  = "missing_remote"
	AmountMismatch = "amount_mismatch"
)

// ProviderTxn is one settled charge from the provider's balance snapshot.
type ProviderTxn struct {
	ChargeID string `json:"charge_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Created  int64  `json:"created"`
}

type Discrepancy struct {
	Kind         string `json:"kind"`
	ChargeID     string `json:"charge_id"`
	PaymentID    uint   `json:"payment_id,omitempty"`
	LocalAmount  int64  `json:"local_amount"`
	RemoteAmount int64  `json:"remote_amount"`
	Delta        int64  `json:"delta"`
}

// Reconcile diffs local rows against the snapshot. Payments already marked
// reconciled are skipped; only succeeded or refunded payments are expected
// to have a settled charge.
func Reconcile(local []models.Payment, remote []ProviderTxn, tolerance int64) []Discrepancy {
	if tolerance < 0 {
		tolerance = 0
	}

	byCharge := make(map[string]ProviderTxn, len(remote))
	for _, t := range remote {
		if t.ChargeID != "" {
			byCharge[t.ChargeID] = t
		}
	}

	var out []Discrepancy
	seen := make(map[string]bool)

	for _, p := range local {
		if p.StripeChargeID == "" {
			continue
		}
		seen[p.StripeChargeID] = true
		if p.Reconciled {
			continue
		}
		if p.Status != models.PaymentSucceeded && p.Status != models.PaymentRefunded {
			continue
		}

		t, ok := byCharge[p.StripeChargeID]
		if !ok {
			out = append(out, Discrepancy{
				Kind:        MissingRemote,
				ChargeID:    p.StripeChargeID,
				PaymentID:   p.ID,
				LocalAmount: p.Amount,
			})
			continue
		}
		if delta := abs(p.Amount - t.Amount); delta > tolerance {
			out = append(out, Discrepancy{
				Kind:         AmountMismatch,
				ChargeID:     p.StripeChargeID,
				PaymentID:    p.ID,
				LocalAmount:  p.Amount,
				RemoteAmount: t.Amount,
				Delta:        delta,
			})
		}
	}

	for _, t := range remote {
		if t.ChargeID == "" || seen[t.ChargeID] {
			continue
		}
		out = append(out, Discrepancy{
			Kind:         MissingLocal,
			ChargeID:     t.ChargeID,
			RemoteAmount: t.Amount,
		})
	}

	return out
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

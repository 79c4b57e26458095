package payments

import (
	"testing"

	"ridebook/internal/models"
)

func payment(id uint, charge string, amount int64, status string) models.Payment {
	p := models.Payment{
		StripeChargeID: charge,
		Amount:         amount,
		Status:         status,
	}
	p.ID = id
	return p
}

func TestReconcileCleanLedger(t *testing.T) {
	local := []models.Payment{
		payment(1, "ch_1", 5000, models.PaymentSucceeded),
		payment(2, "ch_2", 7500, models.PaymentSucceeded),
	}
	remote := []ProviderTxn{
		{ChargeID: "ch_1", Amount: 5000},
		{ChargeID: "ch_2", Amount: 7500},
	}
	if ds := Reconcile(local, remote, 1); len(ds) != 0 {
		t.Fatalf("expected no discrepancies, got %+v", ds)
	}
}

func TestReconcileToleranceBoundary(t *testing.T) {
	local := []models.Payment{payment(1, "ch_1", 5000, models.PaymentSucceeded)}

	// delta == tolerance is not flagged
	remote := []ProviderTxn{{ChargeID: "ch_1", Amount: 5001}}
	if ds := Reconcile(local, remote, 1); len(ds) != 0 {
		t.Fatalf("delta at tolerance should pass, got %+v", ds)
	}

	// delta above tolerance is flagged
	remote = []ProviderTxn{{ChargeID: "ch_1", Amount: 5002}}
	ds := Reconcile(local, remote, 1)
	if len(ds) != 1 || ds[0].Kind != AmountMismatch {
		t.Fatalf("expected one amount_mismatch, got %+v", ds)
	}
	if ds[0].Delta != 2 || ds[0].PaymentID != 1 {
		t.Fatalf("unexpected discrepancy detail: %+v", ds[0])
	}
}

func TestReconcileMissingSides(t *testing.T) {
	local := []models.Payment{payment(1, "ch_only_local", 5000, models.PaymentSucceeded)}
	remote := []ProviderTxn{{ChargeID: "ch_only_remote", Amount: 1200}}

	ds := Reconcile(local, remote, 0)
	if len(ds) != 2 {
		t.Fatalf("expected two discrepancies, got %+v", ds)
	}

	kinds := map[string]bool{}
	for _, d := range ds {
		kinds[d.Kind] = true
	}
	if !kinds[MissingRemote] || !kinds[MissingLocal] {
		t.Fatalf("expected missing_remote and missing_local, got %+v", ds)
	}
}

func TestReconcileSkipsReconciledAndPending(t *testing.T) {
	reconciled := payment(1, "ch_1", 5000, models.PaymentSucceeded)
	reconciled.Reconciled = true
	pending := payment(2, "ch_2", 900, models.PaymentPending)

	local := []models.Payment{reconciled, pending}
	// ch_1 amount disagrees wildly but the row was manually reconciled
	remote := []ProviderTxn{{ChargeID: "ch_1", Amount: 100}}

	ds := Reconcile(local, remote, 0)
	if len(ds) != 0 {
		t.Fatalf("expected no discrepancies, got %+v", ds)
	}
}

func TestReconcileRefundedCompared(t *testing.T) {
	local := []models.Payment{payment(1, "ch_1", 5000, models.PaymentRefunded)}
	remote := []ProviderTxn{{ChargeID: "ch_1", Amount: 4000}}

	ds := Reconcile(local, remote, 1)
	if len(ds) != 1 || ds[0].Kind != AmountMismatch {
		t.Fatalf("expected refunded payment to be diffed, got %+v", ds)
	}
}

package pricing

import (
	"errors"
	"testing"
)

var testFees = map[string]int64{"suv": 1500, "luxury": 3500}

func TestEmptyRequestCostsNothing(t *testing.T) {
	bd, err := Calculate(2000, Request{}, DefaultRates(), testFees)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bd.Total != 0 || len(bd.Items) != 0 {
		t.Fatalf("expected empty breakdown, got total=%d items=%d", bd.Total, len(bd.Items))
	}
}

func TestTotalIsSumOfEnabledItems(t *testing.T) {
	req := Request{
		TripProtection:    true,
		LuggageAssistance: true,
		ExtraLuggage:      2,
		VehicleUpgrade:    "suv",
		InfantSeats:       1,
		BoosterSeats:      2,
		AdditionalStops:   3,
	}
	rates := DefaultRates()
	bd, err := Calculate(10000, req, rates, testFees)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sum int64
	for _, item := range bd.Items {
		sum += item.Amount
	}
	if bd.Total != sum {
		t.Fatalf("total %d != item sum %d", bd.Total, sum)
	}

	// 8% of 10000 = 800, luggage 500, 2*200, suv 1500, infant 800, 2*600, 3*400
	want := int64(800 + 500 + 400 + 1500 + 800 + 1200 + 1200)
	if bd.Total != want {
		t.Fatalf("expected total %d, got %d", want, bd.Total)
	}
}

func TestTripProtectionFloor(t *testing.T) {
	rates := DefaultRates()
	bd, err := Calculate(1000, Request{TripProtection: true}, rates, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 8% of 1000 is 80, below the 300 floor
	if bd.Total != rates.TripProtectionMin {
		t.Fatalf("expected floor %d, got %d", rates.TripProtectionMin, bd.Total)
	}
}

func TestPercentRoundsHalfUp(t *testing.T) {
	if got := percentOf(1231, 800); got != 98 {
		// 1231 * 0.08 = 98.48
		t.Fatalf("expected 98, got %d", got)
	}
	if got := percentOf(1250, 700); got != 88 {
		// 1250 * 0.07 = 87.5 rounds up
		t.Fatalf("expected 88, got %d", got)
	}
}

func TestNegativeCountRejected(t *testing.T) {
	for _, req := range []Request{
		{ExtraLuggage: -1},
		{InfantSeats: -2},
		{BoosterSeats: -1},
		{AdditionalStops: -3},
	} {
		if _, err := Calculate(1000, req, DefaultRates(), testFees); !errors.Is(err, ErrNegativeCount) {
			t.Fatalf("expected ErrNegativeCount for %+v, got %v", req, err)
		}
	}
}

func TestUnknownVehicleClassRejected(t *testing.T) {
	_, err := Calculate(1000, Request{VehicleUpgrade: "helicopter"}, DefaultRates(), testFees)
	if !errors.Is(err, ErrUnknownVehicleClass) {
		t.Fatalf("expected ErrUnknownVehicleClass, got %v", err)
	}
}

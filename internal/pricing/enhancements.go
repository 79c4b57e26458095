package pricing

import (
	"errors"
	"fmt"
)

// Enhancement pricing. All amounts are integer minor units (cents);
// percentages are basis points. Rounding is half-up.

var (
	ErrNegativeCount       = errors.New("enhancement counts must not be negative")
	ErrUnknownVehicleClass = errors.New("unknown vehicle class")
)

// Request is the optional-field enhancement selection attached to a booking.
type Request struct {
	TripProtection    bool   `json:"trip_protection"`
	LuggageAssistance bool   `json:"luggage_assistance"`
	ExtraLuggage      int    `json:"extra_luggage"`
	VehicleUpgrade    string `json:"vehicle_upgrade"` // vehicle class name, empty = none
	InfantSeats       int    `json:"infant_seats"`
	BoosterSeats      int    `json:"booster_seats"`
	AdditionalStops   int    `json:"additional_stops"`
}

type LineItem struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

type Breakdown struct {
	Items []LineItem `json:"items"`
	Total int64      `json:"total"`
}

// Rates holds the per-item price table.
type Rates struct {
	TripProtectionBps    int64 // percentage of base
	TripProtectionMin    int64 // floor for cheap rides
	LuggageAssistanceFee int64
	ExtraLuggagePerBag   int64
	InfantSeatFee        int64
	BoosterSeatFee       int64
	PerStopFee           int64
}

func DefaultRates() Rates {
	return Rates{
		TripProtectionBps:    800, // 8%
		TripProtectionMin:    300,
		LuggageAssistanceFee: 500,
		ExtraLuggagePerBag:   200,
		InfantSeatFee:        800,
		BoosterSeatFee:       600,
		PerStopFee:           400,
	}
}

// Calculate prices a Request against a base amount. upgradeFees maps a
// vehicle class name to its flat upgrade fee. The total is the sum of the
// enabled line items; disabled items contribute nothing.
func Calculate(base int64, req Request, rates Rates, upgradeFees map[string]int64) (Breakdown, error) {
	if req.ExtraLuggage < 0 || req.InfantSeats < 0 || req.BoosterSeats < 0 || req.AdditionalStops < 0 {
		return Breakdown{}, ErrNegativeCount
	}

	var bd Breakdown

	if req.TripProtection {
		amount := percentOf(base, rates.TripProtectionBps)
		if amount < rates.TripProtectionMin {
			amount = rates.TripProtectionMin
		}
		bd.add("trip_protection", amount)
	}
	if req.LuggageAssistance {
		bd.add("luggage_assistance", rates.LuggageAssistanceFee)
	}
	if req.ExtraLuggage > 0 {
		bd.add(fmt.Sprintf("extra_luggage_x%d", req.ExtraLuggage), int64(req.ExtraLuggage)*rates.ExtraLuggagePerBag)
	}
	if req.VehicleUpgrade != "" {
		fee, ok := upgradeFees[req.VehicleUpgrade]
		if !ok {
			return Breakdown{}, ErrUnknownVehicleClass
		}
		bd.add("vehicle_upgrade_"+req.VehicleUpgrade, fee)
	}
	if req.InfantSeats > 0 {
		bd.add(fmt.Sprintf("infant_seat_x%d", req.InfantSeats), int64(req.InfantSeats)*rates.InfantSeatFee)
	}
	if req.BoosterSeats > 0 {
		bd.add(fmt.Sprintf("booster_seat_x%d", req.BoosterSeats), int64(req.BoosterSeats)*rates.BoosterSeatFee)
	}
	if req.AdditionalStops > 0 {
		bd.add(fmt.Sprintf("additional_stop_x%d", req.AdditionalStops), int64(req.AdditionalStops)*rates.PerStopFee)
	}

	return bd, nil
}

func (b *Breakdown) add(label string, amount int64) {
	b.Items = append(b.Items, LineItem{Label: label, Amount: amount})
	b.Total += amount
}

// percentOf applies basis points with half-up rounding.
func percentOf(amount, bps int64) int64 {
	return (amount*bps + 5000) / 10000
}

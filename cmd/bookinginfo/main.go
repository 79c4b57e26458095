// bookinginfo dumps a booking with its payment and driver state as JSON.
// Debugging aid:
//
//	go run ./cmd/bookinginfo -ref 6f1c...   # by reference
//	go run ./cmd/bookinginfo -id 42         # by primary key
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"ridebook/internal/config"
	"ridebook/internal/models"
)

func main() {
	ref := flag.String("ref", "", "booking reference (uuid)")
	id := flag.Uint("id", 0, "booking id")
	flag.Parse()

	if *ref == "" && *id == 0 {
		log.Fatal("usage: bookinginfo -ref <reference> | -id <id>")
	}

	config.InitDB()
	db := config.GetDB()

	query := db.Preload("Driver").Preload("Payment")
	var booking models.Booking
	var err error
	if *ref != "" {
		err = query.Where("reference = ?", *ref).First(&booking).Error
	} else {
		err = query.First(&booking, *id).Error
	}
	if err != nil {
		log.Fatalf("booking not found: %v", err)
	}

	enh := json.RawMessage(booking.Enhancements)
	if len(enh) == 0 {
		enh = json.RawMessage("null")
	}
	out := map[string]interface{}{
		"booking":      booking,
		"enhancements": enh,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode: %v", err)
	}

	fmt.Fprintf(os.Stderr, "status=%s total=%d %s\n", booking.Status, booking.TotalAmount, booking.Currency)
}

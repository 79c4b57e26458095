package controllers

import (
	"testing"

	"ridebook/internal/models"
)

func TestBookingTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{models.BookingPending, models.BookingConfirmed, true},
		{models.BookingPending, models.BookingAssigned, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingConfirmed, models.BookingAssigned, true},
		{models.BookingAssigned, models.BookingInProgress, true},
		{models.BookingInProgress, models.BookingCompleted, true},
		{models.BookingInProgress, models.BookingCancelled, true},

		{models.BookingPending, models.BookingInProgress, false},
		{models.BookingPending, models.BookingCompleted, false},
		{models.BookingConfirmed, models.BookingCompleted, false},
		{models.BookingCompleted, models.BookingCancelled, false},
		{models.BookingCancelled, models.BookingPending, false},
		{models.BookingCompleted, models.BookingInProgress, false},
		{"bogus", models.BookingCancelled, false},
	}

	for _, tc := range cases {
		if got := canTransition(tc.from, tc.to); got != tc.ok {
			t.Errorf("canTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestTerminalStatusesReleaseDriver(t *testing.T) {
	for _, s := range []string{models.BookingCompleted, models.BookingCancelled} {
		if !releasesDriver(s) {
			t.Errorf("releasesDriver(%s) = false, want true", s)
		}
	}
	for _, s := range []string{models.BookingPending, models.BookingConfirmed, models.BookingAssigned, models.BookingInProgress} {
		if releasesDriver(s) {
			t.Errorf("releasesDriver(%s) = true, want false", s)
		}
	}
}

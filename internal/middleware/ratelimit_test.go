package middleware

import (
	"testing"
	"time"
)

func TestRateWindowClampsToOneSecond(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "0")
	if got := rateWindow(); got != time.Second {
		t.Fatalf("expected 1s window for zero config, got %v", got)
	}

	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "-5")
	if got := rateWindow(); got != time.Second {
		t.Fatalf("expected 1s window for negative config, got %v", got)
	}

	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "30")
	if got := rateWindow(); got != 30*time.Second {
		t.Fatalf("expected 30s window, got %v", got)
	}
}

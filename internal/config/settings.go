package config

import (
	"os"
	"strings"

	"github.com/spf13/cast"
)

// Settings beyond the database live in plain env vars, read on demand.

// ListenAddr is the HTTP bind address.
func ListenAddr() string {
	return getEnv("LISTEN_ADDR", "0.0.0.0:8080")
}

// CORSOrigins returns the allowed browser origins (comma separated env).
// An empty list means reflect any origin (dev mode).
func CORSOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// StripeSecretKey is the API key used by the payments client.
func StripeSecretKey() string {
	return os.Getenv("STRIPE_SECRET_KEY")
}

// StripeWebhookSecret signs incoming webhook payloads.
func StripeWebhookSecret() string {
	return os.Getenv("STRIPE_WEBHOOK_SECRET")
}

// RedisAddr enables the rate limiter when non-empty.
func RedisAddr() string {
	return os.Getenv("REDIS_ADDR")
}

func RedisPassword() string {
	return os.Getenv("REDIS_PASSWORD")
}

// RateLimitPerWindow is the allowed request count per client per window.
func RateLimitPerWindow() int {
	return cast.ToInt(getEnv("RATE_LIMIT_REQUESTS", "120"))
}

// RateLimitWindowSeconds is the fixed window length.
func RateLimitWindowSeconds() int {
	return cast.ToInt(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))
}

// ReconcileToleranceCents is the default amount-mismatch tolerance.
func ReconcileToleranceCents() int64 {
	return cast.ToInt64(getEnv("RECONCILE_TOLERANCE_CENTS", "1"))
}

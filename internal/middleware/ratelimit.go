package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"ridebook/internal/config"
)

var rateClient *redis.Client

// InitRateLimiter connects the fixed-window counter backend. Without
// REDIS_ADDR the limiter is a no-op.
func InitRateLimiter() {
	addr := config.RedisAddr()
	if addr == "" {
		logrus.Info("REDIS_ADDR not set, rate limiting disabled")
		return
	}
	rateClient = redis.NewClient(&redis.Options{Addr: addr, Password: config.RedisPassword()})
	if err := rateClient.Ping(context.Background()).Err(); err != nil {
		logrus.WithError(err).Warn("redis unreachable, rate limiting disabled")
		rateClient = nil
	}
}

// rateWindow returns the configured window, clamped to at least one
// second so the bucket division below never divides by zero.
func rateWindow() time.Duration {
	window := time.Duration(config.RateLimitWindowSeconds()) * time.Second
	if window < time.Second {
		window = time.Second
	}
	return window
}

// RateLimit counts requests per client IP in a fixed window and rejects
// with 429 above the configured budget. Fails open on redis errors.
func RateLimit() gin.HandlerFunc {
	limit := int64(config.RateLimitPerWindow())
	window := rateWindow()

	return func(c *gin.Context) {
		if rateClient == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix()/int64(window.Seconds()))
		ctx := c.Request.Context()

		n, err := rateClient.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if n == 1 {
			rateClient.Expire(ctx, key, window)
		}
		if n > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}

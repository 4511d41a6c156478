package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// idle limiters are evicted after this long
const limiterTTL = time.Hour

// RateLimit applies a token bucket per client IP. A non-positive perSecond
// disables limiting.
//
// gin-limit-by-key keeps its limiters in one process-wide cache keyed by the
// string the key func returns, so each RateLimit instance prefixes its keys
// with its own id to keep separate buckets.
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	if perSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	prefix := uuid.New().String()
	return limit.NewRateLimiter(func(c *gin.Context) string {
		return prefix + "|" + c.ClientIP()
	}, func(c *gin.Context) (*rate.Limiter, time.Duration) {
		return rate.NewLimiter(rate.Limit(perSecond), burst), limiterTTL
	}, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
	})
}

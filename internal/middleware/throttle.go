package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transientmap/internal/ratelimit"
)

// LoginThrottleMiddleware rejects login attempts for accounts that have
// exceeded the limiter's failed-attempt budget. Counters decay as the
// limiter's transient map is exercised; there is no unlock timer to run.
//
// The key function extracts the account identifier from the request; an
// empty key is not throttled (the handler will reject the request anyway).
func LoginThrottleMiddleware(limiter *ratelimit.Limiter, key func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		k := key(c)
		if k != "" && !limiter.Allowed(k) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many failed attempts, try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

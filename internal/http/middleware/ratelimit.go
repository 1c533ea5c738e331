// README: Rate limit middleware keyed by client IP.
package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"motohub/internal/modules/ratelimit"
)

func RateLimit(svc *ratelimit.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := svc.Allow(c.Request.Context(), c.ClientIP())
		if d.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		}
		if !d.Allowed {
			secs := int(math.Ceil(d.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(1, secs)))
			abort(c, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}
		c.Next()
	}
}

package middleware

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/ikkim/brandsite-backend/internal/errors"
	"github.com/ikkim/brandsite-backend/pkg/redis"
)

// RateLimit allows limit requests per window for each client IP on the named
// resource. It fails open when Redis is disabled or erroring.
func RateLimit(resource string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || !redis.Enabled() {
			c.Next()
			return
		}

		log := GetLoggerFromContext(c)
		key := fmt.Sprintf("%s:%s", resource, c.ClientIP())

		count, ttl, err := redis.IncrWindow(c.Request.Context(), key, window)
		if err != nil {
			log.Error("Rate limit check failed, allowing request", err, map[string]interface{}{
				"resource": resource,
			})
			c.Next()
			return
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			retryAfter := int(math.Ceil(ttl.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			log.Warn("Rate limit exceeded", map[string]interface{}{
				"resource": resource,
				"count":    count,
				"limit":    limit,
			})
			apperrors.TooManyRequests(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

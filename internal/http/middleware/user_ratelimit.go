package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// UserRateLimit limits requests per authenticated username rather than per
// IP. JWT must run before it.
func UserRateLimit(maxRequests int, size time.Duration) gin.HandlerFunc {
	local := newWindow(size)
	return func(c *gin.Context) {
		username := c.GetString(ContextUsername)
		if username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var val int64
		if redisClient != nil {
			key := "user_rl:" + username + ":" + strconv.FormatInt(int64(size.Seconds()), 10)
			n, ok := incr(c.Request.Context(), key, size)
			if !ok {
				c.Header("X-UserRateLimit-Error", "redis-error")
				c.Next()
				return
			}
			val = n
		} else {
			val = int64(local.hit(username))
		}
		setLimitHeaders(c, "X-UserRateLimit", maxRequests, val)

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues("user:" + c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "user rate limit exceeded",
				"retry_after": int(size.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues("user:" + c.FullPath()).Inc()
		c.Next()
	}
}

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"prime31/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedisRateLimiter initializes a shared Redis client used by the middleware.
// If addr is empty or the ping fails, redisClient stays nil and RateLimit
// falls back to the in-process limiter.
func InitRedisRateLimiter(addr, password string, db int) bool {
	if addr == "" {
		return false
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-process rate limiter", "addr", addr, "error", err)
		_ = client.Close()
		return false
	}
	redisClient = client
	logger.Info("redis rate limiter enabled", "addr", addr)
	return true
}

// CloseRedis releases the shared client.
func CloseRedis() {
	if redisClient != nil {
		_ = redisClient.Close()
		redisClient = nil
	}
}

// incr bumps key in the current fixed window. ok is false on Redis errors.
func incr(ctx context.Context, key string, size time.Duration) (int64, bool) {
	val, err := redisClient.Incr(ctx, key).Result()
	if err != nil {
		RLBackendErrors.Inc()
		logger.Warn("rate limit redis error", "key", key, "error", err)
		return 0, false
	}
	if val == 1 {
		redisClient.Expire(ctx, key, size)
	}
	return val, true
}

// RedisRateLimit implements a fixed-window rate limiter using Redis INCR/EXPIRE.
// key format: rl:<window_seconds>:<client ip>
func RedisRateLimit(maxRequests int, size time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		key := "rl:" + strconv.FormatInt(int64(size.Seconds()), 10) + ":" + c.ClientIP()
		val, ok := incr(c.Request.Context(), key, size)
		if !ok {
			// fail open
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}
		setLimitHeaders(c, "X-RateLimit", maxRequests, val)

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

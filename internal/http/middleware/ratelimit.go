package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	start time.Time
	count int
}

// window is a fixed-window counter keyed by an arbitrary identifier.
type window struct {
	mu      sync.Mutex
	size    time.Duration
	clients map[string]*clientInfo
	now     func() time.Time
}

func newWindow(size time.Duration) *window {
	return &window{size: size, clients: make(map[string]*clientInfo), now: time.Now}
}

// hit counts one request for key and returns the count in the current window.
func (w *window) hit(key string) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	ci, ok := w.clients[key]
	if !ok || now.Sub(ci.start) > w.size {
		ci = &clientInfo{start: now}
		w.clients[key] = ci
		w.sweep(now)
	}
	ci.count++
	return ci.count
}

// sweep drops windows that have expired. Caller holds mu.
func (w *window) sweep(now time.Time) {
	if len(w.clients) < 1024 {
		return
	}
	for k, ci := range w.clients {
		if now.Sub(ci.start) > w.size {
			delete(w.clients, k)
		}
	}
}

// SimpleRateLimit blocks clients that send more than maxRequests per window.
// Each call returns an independent limiter.
func SimpleRateLimit(maxRequests int, size time.Duration) gin.HandlerFunc {
	w := newWindow(size)
	return func(c *gin.Context) {
		n := w.hit(c.ClientIP())
		setLimitHeaders(c, "X-RateLimit", maxRequests, int64(n))

		if n > maxRequests {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

// RateLimit uses Redis when InitRedisRateLimiter connected, and an
// in-process window otherwise.
func RateLimit(maxRequests int, size time.Duration) gin.HandlerFunc {
	if redisClient != nil {
		return RedisRateLimit(maxRequests, size)
	}
	return SimpleRateLimit(maxRequests, size)
}

func setLimitHeaders(c *gin.Context, prefix string, limit int, used int64) {
	remaining := int64(limit) - used
	if remaining < 0 {
		remaining = 0
	}
	c.Header(prefix+"-Limit", strconv.Itoa(limit))
	c.Header(prefix+"-Remaining", strconv.FormatInt(remaining, 10))
}

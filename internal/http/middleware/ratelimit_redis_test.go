package middleware

import (
	"net/http"
	"os"
	"strconv"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Integration-style test: runs only if REDIS_ADDR env is set.
func TestRedisRateLimitIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}

	if !InitRedisRateLimiter(addr, os.Getenv("REDIS_PASSWORD"), db) {
		t.Fatalf("redis at %s did not answer ping", addr)
	}
	defer CloseRedis()

	// a window unique to this run keeps earlier runs' counters out of the way
	size := time.Duration(100+time.Now().UnixNano()%800) * time.Second
	limit := 2
	r := limitedRouter(RateLimit(limit, size))

	for i := 1; i <= limit; i++ {
		w := do(r, "10.1.0.1")
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 got %d", i, w.Code)
		}
		if got, want := w.Header().Get("X-RateLimit-Remaining"), strconv.Itoa(limit-i); got != want {
			t.Fatalf("request %d: remaining = %q, want %q", i, got, want)
		}
		if got := w.Header().Get("X-RateLimit-Limit"); got != "2" {
			t.Fatalf("limit header = %q", got)
		}
	}

	if w := do(r, "10.1.0.1"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", w.Code)
	}
	if w := do(r, "10.1.0.2"); w.Code != http.StatusOK {
		t.Fatalf("other ip: expected 200 got %d", w.Code)
	}
}

// unreachableRedis points the shared client at a closed port.
func unreachableRedis(t *testing.T) {
	t.Helper()
	redisClient = redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(CloseRedis)
}

func TestRedisRateLimitFailsOpen(t *testing.T) {
	unreachableRedis(t)
	r := limitedRouter(RedisRateLimit(1, time.Minute))

	for i := 0; i < 3; i++ {
		w := do(r, "10.2.0.1")
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 got %d", i, w.Code)
		}
		if got := w.Header().Get("X-RateLimit-Error"); got != "redis-error" {
			t.Fatalf("request %d: error header = %q", i, got)
		}
	}
}

func TestUserRateLimitFailsOpen(t *testing.T) {
	unreachableRedis(t)
	r := authedRouter(UserRateLimit(1, time.Minute))
	token := tokenFor(t, "alice")

	for i := 0; i < 3; i++ {
		w := get(r, "Bearer "+token)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 got %d", i, w.Code)
		}
		if got := w.Header().Get("X-UserRateLimit-Error"); got != "redis-error" {
			t.Fatalf("request %d: error header = %q", i, got)
		}
	}
}

func TestInitRedisRateLimiterUnreachable(t *testing.T) {
	CloseRedis()
	if InitRedisRateLimiter("127.0.0.1:1", "", 0) {
		t.Fatalf("expected init to fail against a closed port")
	}
	if redisClient != nil {
		t.Fatalf("client kept after failed ping")
	}
	if InitRedisRateLimiter("", "", 0) {
		t.Fatalf("empty addr must leave redis disabled")
	}
}

package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles clients by IP with a fixed-window counter in redis.
// A redis outage disables throttling instead of failing requests; the status
// endpoints must stay readable even when the cache tier is down.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		limit:  int64(limit),
		window: window,
	}
}

func (rl *RateLimiter) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "ratelimit:" + c.ClientIP()

		// One round trip: bump the counter, arm the window TTL if the key is
		// fresh, and read how long the window has left.
		pipe := rl.rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, rl.window)
		ttl := pipe.TTL(ctx, key)

		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("rate limiter bypassed, redis error: %v", err)
			c.Next()
			return
		}

		count := incr.Val()
		retryAfter := ttl.Val()
		if retryAfter < 0 {
			retryAfter = rl.window
		}

		remaining := rl.limit - count
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(rl.limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(retryAfter).Unix(), 10))

		if count > rl.limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "rate limit exceeded",
				"retry_in_s": int(retryAfter.Seconds()),
			})
			return
		}

		c.Next()
	}
}

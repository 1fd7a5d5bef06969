package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/growth-partner/pkg/response"
)

// KeyFunc builds a rate-limit key from the request.
type KeyFunc func(c *gin.Context) string

// AllowFunc returns true for requests that skip the limiter.
type AllowFunc func(*gin.Context) bool

func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	if ip := resolveIP(c); ip != "" {
		return ip
	}
	return "unknown"
}

func routeOf(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath gives every route its own budget per client.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + routeOf(c) + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUserID limits by the requester set by Requester, falling back to the
// client IP for anonymous calls.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		uid := c.GetString(CtxUserIDKey)
		if uid == "" {
			return "rl:user:anon:ip:" + ipFromCtx(c)
		}
		return "rl:user:" + uid
	}
}

// Returns {count, pttl}; the expiry is only set when the window opens.
var windowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// hit counts one request in the fixed window of key.
func hit(ctx context.Context, rdb *redis.Client, key string, window time.Duration) (int, time.Duration, error) {
	res, err := windowScript.Run(ctx, rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(res) != 2 {
		return 0, 0, fmt.Errorf("rate limit: unexpected script reply %v", res)
	}
	reset := time.Duration(res[1]) * time.Millisecond
	if reset < 0 {
		reset = 0
	}
	return int(res[0]), reset, nil
}

// RateLimit is a fixed-window limiter backed by Redis. It sets the
// X-RateLimit-* headers and skips OPTIONS and allowed requests. A Redis
// failure lets the request through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || limit <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		count, reset, err := hit(c.Request.Context(), rdb, keyFn(c), window)
		if err != nil {
			c.Next()
			return
		}
		resetSec := int(math.Ceil(reset.Seconds()))

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(0, limit-count)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > limit {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Error[any](c, http.StatusTooManyRequests, "rate limit exceeded", response.ErrorBody{Kind: "rate_limited"})
			c.Abort()
			return
		}
		c.Next()
	}
}

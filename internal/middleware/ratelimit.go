package middleware

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/ev-charging-admin/internal/config"
)

// windowBucket maps a wall-clock instant to its fixed-window bucket
// number. Windows shorter than one second are counted as one second;
// the bucket math runs in whole seconds and must never divide by zero.
func windowBucket(t time.Time, window time.Duration) int64 {
    secs := int64(window / time.Second)
    if secs < 1 {
        secs = 1
    }
    return t.Unix() / secs
}

// RateLimit returns a fixed-window rate limiter backed by Redis.
// Requests are counted per client IP per route; when the counter
// exceeds the configured limit the request is answered with 429 and a
// Retry-After header. Redis errors fail open so the API stays
// available when the limiter backend is down.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ip := c.RealIP()
            if ip == "" {
                ip = "unknown"
            }
            // One counter per IP+route per window; the window boundary
            // is derived from wall-clock time so all instances agree.
            bucket := windowBucket(time.Now(), cfg.Window)
            key := cfg.Prefix + ":" + ip + ":" + c.Request().Method + ":" + c.Path() + ":" + strconv.FormatInt(bucket, 10)

            ctx := c.Request().Context()
            n, err := rdb.Incr(ctx, key).Result()
            if err != nil {
                return next(c)
            }
            if n == 1 {
                _ = rdb.Expire(ctx, key, cfg.Window).Err()
            }

            remaining := int64(cfg.Limit) - n
            if remaining < 0 {
                remaining = 0
            }
            c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
            c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

            if n > int64(cfg.Limit) {
                secs := int(cfg.Window / time.Second)
                if secs < 1 {
                    secs = 1
                }
                c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
                return c.JSON(http.StatusTooManyRequests, echo.Map{"message": "rate limit exceeded"})
            }
            return next(c)
        }
    }
}

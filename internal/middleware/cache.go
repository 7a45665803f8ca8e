package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/ev-charging-admin/internal/config"
)

// bodyRecorder captures the response body and status while still
// forwarding everything to the client.
type bodyRecorder struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
}

func (w *bodyRecorder) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
    w.buf.Write(b)
    return w.ResponseWriter.Write(b)
}

// cacheKey derives the Redis key from the concrete request path and
// query string. The registered route pattern must not be used here:
// on a parametrized route like /v1/stations/:id it is identical for
// every station, and two different resources would share one entry.
func cacheKey(prefix, path, rawQuery string) string {
    sum := sha1.Sum([]byte(path + "?" + rawQuery))
    return fmt.Sprintf("%s:%x", prefix, sum)
}

// CacheGET returns a Redis-backed response cache for GET endpoints.
// Successful JSON responses are stored under a key derived from the
// request URL and replayed until the TTL expires. Mutating methods
// bypass the cache entirely, as do responses above the size cap. A
// nil Redis client disables the middleware.
func CacheGET(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            key := cacheKey(cfg.Prefix, c.Request().URL.Path, c.Request().URL.RawQuery)

            ctx := c.Request().Context()
            if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
                c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
                c.Response().Header().Set("X-Cache", "HIT")
                return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
            }

            rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
            c.Response().Writer = rec
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if rec.status == http.StatusOK && rec.buf.Len() <= cfg.MaxBodyBytes {
                // The request context may already be done; store with a
                // fresh one so the write is not lost.
                _ = rdb.SetEx(context.Background(), key, rec.buf.Bytes(), cfg.TTL).Err()
            }
            return nil
        }
    }
}

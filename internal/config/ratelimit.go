package config

import "time"

// RateLimitConfig controls the Redis fixed-window rate limiter.
// Requests are counted per client IP per window; a disabled config or
// a nil Redis client turns the middleware into a pass-through.
type RateLimitConfig struct {
    Enabled bool
    Limit   int           // max requests per window
    Window  time.Duration // window length
    Prefix  string        // key namespace in Redis
}

// LoadRateLimitConfig reads rate limiter settings from the
// environment, with defaults suitable for an admin API.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled: envBool("RATE_LIMIT_ENABLED", true),
        Limit:   envInt("RATE_LIMIT_LIMIT", 120),
        Window:  envDur("RATE_LIMIT_WINDOW", time.Minute),
        Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
    }
    if cfg.Limit < 1 {
        cfg.Limit = 1
    }
    if cfg.Window <= 0 {
        cfg.Window = time.Minute
    }
    // The limiter buckets time in whole seconds; anything shorter
    // would make the bucket width zero.
    if cfg.Window < time.Second {
        cfg.Window = time.Second
    }
    return cfg
}

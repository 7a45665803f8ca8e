package config

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
    t.Setenv("RATE_LIMIT_LIMIT", "")
    t.Setenv("RATE_LIMIT_WINDOW", "")
    cfg := LoadRateLimitConfig()
    assert.Equal(t, 120, cfg.Limit)
    assert.Equal(t, time.Minute, cfg.Window)
}

func TestLoadRateLimitConfigClampsWindow(t *testing.T) {
    // Sub-second windows are rounded up so the limiter's whole-second
    // bucket math stays well defined.
    t.Setenv("RATE_LIMIT_WINDOW", "500ms")
    assert.Equal(t, time.Second, LoadRateLimitConfig().Window)

    t.Setenv("RATE_LIMIT_WINDOW", "-10s")
    assert.Equal(t, time.Minute, LoadRateLimitConfig().Window)
}

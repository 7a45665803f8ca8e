package middleware

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestCacheKeyDistinguishesResources(t *testing.T) {
    // Two different stations fetched through the same route must not
    // share a cache entry.
    one := cacheKey("cache", "/v1/stations/1", "")
    two := cacheKey("cache", "/v1/stations/2", "")
    assert.NotEqual(t, one, two)

    // The query string is part of the identity too.
    plain := cacheKey("cache", "/v1/stations", "")
    filtered := cacheKey("cache", "/v1/stations", "active=true")
    assert.NotEqual(t, plain, filtered)
}

func TestCacheKeyIsStable(t *testing.T) {
    a := cacheKey("cache", "/v1/stations/7", "page=2")
    b := cacheKey("cache", "/v1/stations/7", "page=2")
    assert.Equal(t, a, b)
}

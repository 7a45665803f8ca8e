package middleware

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestWindowBucket(t *testing.T) {
    at := time.Date(2025, 6, 1, 10, 0, 30, 0, time.UTC)

    // Consecutive instants inside one window share a bucket; the next
    // window starts a new one.
    assert.Equal(t, windowBucket(at, time.Minute), windowBucket(at.Add(20*time.Second), time.Minute))
    assert.NotEqual(t, windowBucket(at, time.Minute), windowBucket(at.Add(time.Minute), time.Minute))
}

func TestWindowBucketClampsSubSecondWindows(t *testing.T) {
    at := time.Date(2025, 6, 1, 10, 0, 30, 0, time.UTC)

    // A window shorter than a second would otherwise divide by zero;
    // it is counted as one second instead.
    assert.NotPanics(t, func() { windowBucket(at, 500*time.Millisecond) })
    assert.Equal(t, windowBucket(at, time.Second), windowBucket(at, 500*time.Millisecond))
    assert.Equal(t, windowBucket(at, time.Second), windowBucket(at, 0))
}

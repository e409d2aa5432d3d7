// File: internal/ratelimit/ratelimit_test.go
package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow_EnforcesWindowLimit(t *testing.T) {
	limiter := NewMemoryRateLimiter(&Config{
		WindowSize:    time.Minute,
		MaxAttempts:   3,
		CleanupPeriod: time.Hour,
	})
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		ok, _ := limiter.Allow("1.2.3.4")
		assert.True(t, ok, "attempt %d should be allowed", i+1)
	}
	ok, resetAt := limiter.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.True(t, resetAt.After(time.Now()))
}

func TestAllow_IdentifiersAreIndependent(t *testing.T) {
	limiter := NewMemoryRateLimiter(&Config{
		WindowSize:    time.Minute,
		MaxAttempts:   1,
		CleanupPeriod: time.Hour,
	})
	defer limiter.Close()

	ok, _ := limiter.Allow("1.2.3.4")
	assert.True(t, ok)
	ok, _ = limiter.Allow("1.2.3.4")
	assert.False(t, ok)

	ok, _ = limiter.Allow("5.6.7.8")
	assert.True(t, ok)
}

func TestAllow_WindowExpiryResetsTheCount(t *testing.T) {
	limiter := NewMemoryRateLimiter(&Config{
		WindowSize:    10 * time.Millisecond,
		MaxAttempts:   1,
		CleanupPeriod: time.Hour,
	})
	defer limiter.Close()

	ok, _ := limiter.Allow("1.2.3.4")
	assert.True(t, ok)
	ok, _ = limiter.Allow("1.2.3.4")
	assert.False(t, ok)

	time.Sleep(20 * time.Millisecond)
	ok, _ = limiter.Allow("1.2.3.4")
	assert.True(t, ok)
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:54321"
	assert.Equal(t, "10.0.0.1", GetClientIP(r))

	r.Header.Set("X-Real-IP", "9.9.9.9")
	assert.Equal(t, "9.9.9.9", GetClientIP(r))

	r.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	assert.Equal(t, "1.2.3.4", GetClientIP(r))
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	// 120 requests per minute (2 per second) with burst of 1
	rl := NewRateLimiter(120, 1)

	limiter := rl.GetLimiter("192.168.1.1")

	assert.True(t, limiter.Allow(), "first request should be allowed")
	assert.False(t, limiter.Allow(), "second request should be blocked, burst exhausted")

	// 2 req/sec means a token refills in 0.5s
	time.Sleep(600 * time.Millisecond)
	assert.True(t, limiter.Allow(), "request after refill should be allowed")
}

func TestRateLimiter_DifferentIPs(t *testing.T) {
	rl := NewRateLimiter(2, 1)

	limiter1 := rl.GetLimiter("192.168.1.1")
	limiter2 := rl.GetLimiter("192.168.1.2")

	assert.True(t, limiter1.Allow())
	assert.True(t, limiter2.Allow())

	assert.False(t, limiter1.Allow())
	assert.False(t, limiter2.Allow())
}

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(2, 1)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "success")
	}
	wrapped := rl.RateLimitMiddleware()(handler)

	req1 := httptest.NewRequest(http.MethodGet, "/api/v1/entities", nil)
	req1.RemoteAddr = "192.168.1.1:12345"
	rec1 := httptest.NewRecorder()
	assert.NoError(t, wrapped(e.NewContext(req1, rec1)))
	assert.Equal(t, http.StatusOK, rec1.Code)

	// Burst exhausted, next request from the same IP is rejected
	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/entities", nil)
	req2.RemoteAddr = "192.168.1.1:12345"
	rec2 := httptest.NewRecorder()
	assert.NoError(t, wrapped(e.NewContext(req2, rec2)))
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
}

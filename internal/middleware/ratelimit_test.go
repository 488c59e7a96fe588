package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/european-living/internal/middleware"
)

func doFrom(h http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodPost, "/signup", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_AllowsBurstThenRejects(t *testing.T) {
	h := middleware.NewRateLimiter(3, nil).Handler(trivialHandler)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:1234"), "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, doFrom(h, "10.0.0.1:1234"))
}

func TestRateLimiter_PerClient(t *testing.T) {
	h := middleware.NewRateLimiter(1, nil).Handler(trivialHandler)

	assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, doFrom(h, "10.0.0.1:5678"))
	assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.2:1234"))
}

func TestRateLimiter_RetryAfterHeader(t *testing.T) {
	h := middleware.NewRateLimiter(1, nil).Handler(trivialHandler)
	doFrom(h, "10.0.0.3:1")

	req := httptest.NewRequest(http.MethodPost, "/signup", nil)
	req.RemoteAddr = "10.0.0.3:1"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_SweepsIdleClientsOncePerTTL(t *testing.T) {
	l := middleware.NewRateLimiter(10, nil)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := start
	l.SetClock(func() time.Time { return now })
	h := l.Handler(trivialHandler)
	ttl := middleware.IdleLimiterTTL

	doFrom(h, "10.0.0.1:1")
	now = start.Add(ttl / 2)
	doFrom(h, "10.0.0.2:1")
	assert.Equal(t, 2, l.Tracked())

	// First sweep: .1 has been idle past the TTL, .2 has not.
	now = start.Add(ttl + time.Second)
	doFrom(h, "10.0.0.3:1")
	assert.Equal(t, 2, l.Tracked())

	// .2 is idle past the TTL now, but the last sweep is too recent.
	now = start.Add(2 * ttl)
	doFrom(h, "10.0.0.4:1")
	assert.Equal(t, 3, l.Tracked())

	// Second sweep removes .2 and .3.
	now = start.Add(2*ttl + 2*time.Second)
	doFrom(h, "10.0.0.5:1")
	assert.Equal(t, 2, l.Tracked())
}

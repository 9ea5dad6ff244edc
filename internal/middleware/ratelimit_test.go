package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestLimiter(now *time.Time) *rateLimiter {
	return &rateLimiter{
		limit:         rate.Limit(1),
		burst:         1,
		clients:       make(map[string]*clientLimiter),
		sweepInterval: 10 * time.Second,
		now: func() time.Time {
			return *now
		},
		onLimited: func(c *gin.Context) {
			c.String(http.StatusTooManyRequests, "slow down")
		},
	}
}

func TestRateLimiterHandle_BlocksWithinWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Now()
	limiter := newTestLimiter(&now)

	c1, _ := gin.CreateTestContext(httptest.NewRecorder())
	c1.Request = httptest.NewRequest(http.MethodPost, "/prompt", nil)
	limiter.handle(c1)
	require.False(t, c1.IsAborted())

	rec := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(rec)
	c2.Request = httptest.NewRequest(http.MethodPost, "/prompt", nil)
	limiter.handle(c2)
	require.True(t, c2.IsAborted())
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	now = now.Add(2 * time.Second)
	c3, _ := gin.CreateTestContext(httptest.NewRecorder())
	c3.Request = httptest.NewRequest(http.MethodPost, "/prompt", nil)
	limiter.handle(c3)
	require.False(t, c3.IsAborted())
}

func TestRateLimiterCleanupExpiredLocked_RemovesIdleClients(t *testing.T) {
	base := time.Now()
	limiter := newTestLimiter(&base)
	limiter.clients["expired"] = &clientLimiter{limiter: rate.NewLimiter(1, 1), lastSeen: base.Add(-20 * time.Second)}
	limiter.clients["active"] = &clientLimiter{limiter: rate.NewLimiter(1, 1), lastSeen: base.Add(-2 * time.Second)}

	limiter.mu.Lock()
	limiter.cleanupExpiredLocked(base)
	limiter.mu.Unlock()

	require.NotContains(t, limiter.clients, "expired")
	require.Contains(t, limiter.clients, "active")
	require.False(t, limiter.lastSweep.IsZero())
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := RateLimit(0, 0, nil)
	for i := 0; i < 5; i++ {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/prompt", nil)
		handler(c)
		require.False(t, c.IsAborted())
	}
}

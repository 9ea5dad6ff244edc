package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	appErr "github.com/xxxsen/glbpick/internal/pkg/errors"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	mu            sync.Mutex
	limit         rate.Limit
	burst         int
	clients       map[string]*clientLimiter
	sweepInterval time.Duration
	lastSweep     time.Time
	now           func() time.Time
	onLimited     gin.HandlerFunc
}

// RateLimit throttles each client ip and route to perSecond requests with the
// given burst. onLimited writes the rejection; nil answers 429.
func RateLimit(perSecond float64, burst int, onLimited gin.HandlerFunc) gin.HandlerFunc {
	if burst <= 0 {
		burst = 1
	}
	if onLimited == nil {
		onLimited = func(c *gin.Context) {
			c.String(http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
		}
	}
	limiter := &rateLimiter{
		limit:         rate.Limit(perSecond),
		burst:         burst,
		clients:       make(map[string]*clientLimiter),
		sweepInterval: time.Minute,
		now:           time.Now,
		onLimited:     onLimited,
	}
	return limiter.handle
}

func (l *rateLimiter) handle(c *gin.Context) {
	if l.limit <= 0 {
		c.Next()
		return
	}
	ip := c.ClientIP()
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	key := strings.Join([]string{ip, path}, "|")

	now := l.now()
	l.mu.Lock()
	l.cleanupExpiredLocked(now)
	entry, ok := l.clients[key]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = entry
	}
	entry.lastSeen = now
	allowed := entry.limiter.AllowN(now, 1)
	l.mu.Unlock()

	if !allowed {
		logutil.GetLogger(c.Request.Context()).Warn("rate limit hit",
			zap.String("ip", ip),
			zap.String("path", path),
			zap.Error(appErr.ErrTooMany),
		)
		l.onLimited(c)
		c.Abort()
		return
	}
	c.Next()
}

// cleanupExpiredLocked drops clients idle long enough to have refilled their
// bucket. Callers hold l.mu.
func (l *rateLimiter) cleanupExpiredLocked(now time.Time) {
	if !l.lastSweep.IsZero() && now.Sub(l.lastSweep) < l.sweepInterval {
		return
	}
	l.lastSweep = now
	idle := l.sweepInterval
	if refill := time.Duration(float64(l.burst) / float64(l.limit) * float64(time.Second)); refill > idle {
		idle = refill
	}
	for key, entry := range l.clients {
		if now.Sub(entry.lastSeen) >= idle {
			delete(l.clients, key)
		}
	}
}

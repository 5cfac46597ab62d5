package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientWindow struct {
	start time.Time
	count int
}

type localLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
}

func newLocalLimiter() *localLimiter {
	return &localLimiter{clients: make(map[string]*clientWindow)}
}

// allow applies a fixed window per identifier, in process. Used as the
// fallback when no Redis backend is configured.
func (l *localLimiter) allow(ident string, maxRequests int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cw, ok := l.clients[ident]
	if !ok || now.Sub(cw.start) > window {
		l.clients[ident] = &clientWindow{start: now, count: 1}
		return true
	}
	cw.count++
	return cw.count <= maxRequests
}

var fallbackLimiter = newLocalLimiter()

// LocalRateLimit blocks clients that send more than maxRequests per window,
// tracked in process memory. Single-instance deployments use it directly.
func LocalRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	limiter := newLocalLimiter()
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), maxRequests, window) {
			rlBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		rlRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

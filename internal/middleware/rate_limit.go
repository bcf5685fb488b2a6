// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/resalex/backend/internal/i18n"
	"github.com/resalex/backend/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	sweepInterval = time.Minute
	staleAfter    = 5 * time.Minute
)

// ipLimiter hands out one token bucket per client IP. Buckets untouched for
// staleAfter are dropped by a background sweep so the map stays bounded.
type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
}

type bucket struct {
	tokens   *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(limit rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		burst:   burst,
	}
	go l.sweep()
	return l
}

func (l *ipLimiter) sweep() {
	for {
		time.Sleep(sweepInterval)
		l.mu.Lock()
		for ip, b := range l.buckets {
			if time.Since(b.lastSeen) > staleAfter {
				delete(l.buckets, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{tokens: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	return b.tokens.Allow()
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			lang := utils.GetLangFromContext(c)
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED",
				i18n.T(lang, i18n.KeyRateLimited), nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestsPerSecond allows each client IP n requests per second with a burst
// of the same size. Tier values come from config.RateLimitConfig.
func RequestsPerSecond(n int) gin.HandlerFunc {
	if n < 1 {
		n = 1
	}
	return newIPLimiter(rate.Limit(n), n).handler()
}

// RequestsPerMinute allows each client IP n requests per minute. Used for
// the expensive tiers: credential checks and image uploads.
func RequestsPerMinute(n int) gin.HandlerFunc {
	if n < 1 {
		n = 1
	}
	return newIPLimiter(rate.Every(time.Minute/time.Duration(n)), n).handler()
}

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/rafamossetto/distributor-api/internal/apierror"

	"github.com/gin-gonic/gin"
)

const limiterPurgeInterval = 5 * time.Minute

// ipWindow is one client's fixed window: hit count plus the instant the
// window rolls over.
type ipWindow struct {
	mu      sync.Mutex
	hits    int
	resetAt time.Time
}

// ipLimiter is a fixed-window request limiter keyed by client IP. Every
// instance purges idle entries on its own ticker so one-off IPs do not
// accumulate forever.
type ipLimiter struct {
	mu    sync.Mutex
	seen  map[string]*ipWindow
	limit int
	span  time.Duration
}

func newIPLimiter(limit int, span time.Duration) *ipLimiter {
	l := &ipLimiter{
		seen:  make(map[string]*ipWindow),
		limit: limit,
		span:  span,
	}
	go l.purgeLoop()
	return l
}

// allow counts one hit for ip and reports whether it is still within the
// limit, along with the instant the current window resets.
func (l *ipLimiter) allow(ip string, now time.Time) (bool, time.Time) {
	l.mu.Lock()
	w, ok := l.seen[ip]
	if !ok {
		w = &ipWindow{}
		l.seen[ip] = w
	}
	l.mu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	if now.After(w.resetAt) {
		w.hits = 0
		w.resetAt = now.Add(l.span)
	}
	w.hits++
	return w.hits <= l.limit, w.resetAt
}

func (l *ipLimiter) purgeLoop() {
	ticker := time.NewTicker(limiterPurgeInterval)
	defer ticker.Stop()
	for range ticker.C {
		l.purge(time.Now())
	}
}

func (l *ipLimiter) purge(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, w := range l.seen {
		w.mu.Lock()
		expired := now.After(w.resetAt)
		w.mu.Unlock()
		if expired {
			delete(l.seen, ip)
		}
	}
}

// LoginRateLimiter caps login attempts at 20 per minute per IP, keeping
// credential stuffing off the bcrypt path.
func LoginRateLimiter() gin.HandlerFunc {
	l := newIPLimiter(20, time.Minute)
	return func(c *gin.Context) {
		if ok, _ := l.allow(c.ClientIP(), time.Now()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter guards the whole API. Limit and window come from the server
// configuration (RATE_LIMIT_PER_MINUTE).
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newIPLimiter(limit, window)
	return func(c *gin.Context) {
		ok, resetAt := l.allow(c.ClientIP(), time.Now())
		if !ok {
			c.Header("Retry-After", resetAt.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"sync"
	"time"

	"lavadero/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Sliding-window limiter ────────────────────────────────────────────────────

// ipEntry tracks attempts per IP within a window.
type ipEntry struct {
	count     int
	windowEnd time.Time
}

type windowLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	entries map[string]*ipEntry
}

func newWindowLimiter(limit int, window time.Duration) *windowLimiter {
	return &windowLimiter{limit: limit, window: window, entries: make(map[string]*ipEntry)}
}

// allow counts one attempt for ip and reports whether it is within the limit,
// plus the end of the current window.
func (l *windowLimiter) allow(ip string, now time.Time) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[ip]
	if !ok {
		entry = &ipEntry{}
		l.entries[ip] = entry
	}
	if now.After(entry.windowEnd) {
		entry.count = 0
		entry.windowEnd = now.Add(l.window)
	}
	entry.count++
	return entry.count <= l.limit, entry.windowEnd
}

// purge drops expired entries and returns how many were removed.
func (l *windowLimiter) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for ip, entry := range l.entries {
		if now.After(entry.windowEnd) {
			delete(l.entries, ip)
			n++
		}
	}
	return n
}

// ── Middleware ────────────────────────────────────────────────────────────────

// LoginRateLimiter limits login attempts to perMinute per IP.
func LoginRateLimiter(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		perMinute = 20
	}
	l := newWindowLimiter(perMinute, time.Minute)
	track(l)
	return func(c *gin.Context) {
		if ok, _ := l.allow(c.ClientIP(), time.Now()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter returns a general-purpose sliding-window rate limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newWindowLimiter(limit, window)
	track(l)
	return func(c *gin.Context) {
		ok, windowEnd := l.allow(c.ClientIP(), time.Now())
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// ── Purge goroutine ───────────────────────────────────────────────────────────
// Periodically removes expired entries so IPs that never return do not
// accumulate.

const purgeInterval = 5 * time.Minute

var (
	limiters   []*windowLimiter
	limitersMu sync.Mutex
	purgeOnce  sync.Once
)

func track(l *windowLimiter) {
	limitersMu.Lock()
	limiters = append(limiters, l)
	limitersMu.Unlock()
	purgeOnce.Do(func() { go purgeExpiredEntries() })
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		limitersMu.Lock()
		purged := 0
		for _, l := range limiters {
			purged += l.purge(now)
		}
		limitersMu.Unlock()
		if purged > 0 {
			log.Debug().Int("purged", purged).Msg("rate limiter: expired entries removed")
		}
	}
}

package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type caller struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter controls how frequently a caller may perform an action.
type RateLimiter interface {
	Allow(key string) bool
}

// callerRateLimiter tracks request rates per key (typically a client address)
// with expiration of idle entries.
type callerRateLimiter struct {
	mu      sync.Mutex
	callers map[string]*caller
	limit   rate.Limit
	burst   int
	ttl     time.Duration
	now     func() time.Time
}

// NewPerCallerLimiter allows up to `requests` events per `window` for each key.
// The full budget is available as burst, so the (requests+1)-th call inside a
// window is rejected and the budget refills as the window elapses. Idle entries
// are dropped after ttl.
func NewPerCallerLimiter(requests int, window, ttl time.Duration) RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Second
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &callerRateLimiter{
		callers: make(map[string]*caller),
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (l *callerRateLimiter) Allow(key string) bool {
	if key == "" {
		key = "unknown"
	}

	now := l.now()

	l.mu.Lock()
	c := l.getCallerLocked(key, now)
	l.gcLocked(now)
	l.mu.Unlock()

	return c.limiter.Allow()
}

func (l *callerRateLimiter) getCallerLocked(key string, now time.Time) *caller {
	if c, ok := l.callers[key]; ok {
		c.lastSeen = now
		return c
	}

	c := &caller{limiter: rate.NewLimiter(l.limit, l.burst), lastSeen: now}
	l.callers[key] = c
	return c
}

func (l *callerRateLimiter) gcLocked(now time.Time) {
	for key, c := range l.callers {
		if now.Sub(c.lastSeen) > l.ttl {
			delete(l.callers, key)
		}
	}
}

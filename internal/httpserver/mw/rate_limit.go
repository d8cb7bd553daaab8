package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/utils"
)

// RateLimitConfig sizes the per-client token bucket. Zero values fall back
// to the defaults applied in newLimiter.
type RateLimitConfig struct {
	Burst      int           // bucket capacity
	PerMinute  int           // tokens refilled per minute
	MaxClients int           // sweep early once this many buckets exist (0 = unbounded)
	IdleTTL    time.Duration // buckets untouched this long are dropped
	TrustProxy bool

	now func() time.Time
}

type bucket struct {
	tokens  float64
	updated time.Time
}

// limiter keeps one bucket per client address.
type limiter struct {
	mu        sync.Mutex
	cfg       RateLimitConfig
	perSecond float64
	buckets   map[string]*bucket
	nextSweep time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.PerMinute < 1 {
		cfg.PerMinute = 1
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	return &limiter{
		cfg:       cfg,
		perSecond: float64(cfg.PerMinute) / 60,
		buckets:   make(map[string]*bucket),
		nextSweep: cfg.now().Add(cfg.IdleTTL),
	}
}

// take consumes one token for key. When the bucket is empty it reports how
// many whole seconds until the next token.
func (l *limiter) take(key string) (ok bool, remaining, retryAfter int) {
	now := l.cfg.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.nextSweep) || (l.cfg.MaxClients > 0 && len(l.buckets) >= l.cfg.MaxClients) {
		l.sweep(now)
	}

	b, found := l.buckets[key]
	if !found {
		b = &bucket{tokens: float64(l.cfg.Burst), updated: now}
		l.buckets[key] = b
	}
	if elapsed := now.Sub(b.updated).Seconds(); elapsed > 0 {
		b.tokens = math.Min(float64(l.cfg.Burst), b.tokens+elapsed*l.perSecond)
	}
	b.updated = now

	if b.tokens < 1 {
		wait := int(math.Ceil((1 - b.tokens) / l.perSecond))
		return false, 0, max(wait, 1)
	}
	b.tokens--
	return true, int(b.tokens), 0
}

func (l *limiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.updated) > l.cfg.IdleTTL {
			delete(l.buckets, key)
		}
	}
	l.nextSweep = now.Add(l.cfg.IdleTTL)
}

// RateLimit throttles each client address with a token bucket and answers
// 429 with Retry-After once the bucket is empty. The returned middleware
// shares one set of buckets across every route it wraps.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newLimiter(cfg)
	limit := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, remaining, retryAfter := l.take(utils.ClientIP(r, l.cfg.TrustProxy))

			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

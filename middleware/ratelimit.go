package middleware

import (
	"sync"
	"sync/atomic"
	"time"

	"hotel-booking/apperrors"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// DefaultLimiterIdleTTL is how long a client's bucket survives without requests.
const DefaultLimiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	lim      *rate.Limiter
	lastSeen atomic.Int64
}

// RateLimiter hands out one token bucket per client IP. Buckets idle for
// longer than idleTTL are swept lazily from the request path.
type RateLimiter struct {
	limiters  sync.Map
	rps       rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep atomic.Int64
	now       func() time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 5
	}
	l := &RateLimiter{rps: rate.Limit(rps), burst: burst, idleTTL: DefaultLimiterIdleTTL, now: time.Now}
	l.lastSweep.Store(l.now().UnixNano())
	return l
}

func (l *RateLimiter) getLimiter(key string, now time.Time) *rate.Limiter {
	v, ok := l.limiters.Load(key)
	if !ok {
		v, _ = l.limiters.LoadOrStore(key, &clientLimiter{lim: rate.NewLimiter(l.rps, l.burst)})
	}
	cl := v.(*clientLimiter)
	cl.lastSeen.Store(now.UnixNano())
	return cl.lim
}

// sweep drops idle buckets at most once per idleTTL.
func (l *RateLimiter) sweep(now time.Time) {
	last := l.lastSweep.Load()
	if now.UnixNano()-last < int64(l.idleTTL) || !l.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}
	cutoff := now.Add(-l.idleTTL).UnixNano()
	l.limiters.Range(func(key, v any) bool {
		if v.(*clientLimiter).lastSeen.Load() < cutoff {
			l.limiters.Delete(key)
		}
		return true
	})
}

func (l *RateLimiter) clients() int {
	n := 0
	l.limiters.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Handler rejects requests beyond the bucket with 429. A non-positive
// rate disables limiting.
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.rps <= 0 {
			c.Next()
			return
		}
		now := l.now()
		l.sweep(now)
		if !l.getLimiter(c.ClientIP(), now).AllowN(now, 1) {
			c.Header("Retry-After", "1")
			utils.JSONError(c, apperrors.ErrRateLimited)
			return
		}
		c.Next()
	}
}

package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"inventory/src/app/http/response"
	"inventory/src/infra/config"
)

// sweepThreshold is the client count above which idle limiters are dropped.
const sweepThreshold = 1024

type clientLimiter struct {
	limiter  *rate.Limiter
	waiting  int
	lastSeen time.Time
}

// RateLimiter holds one token bucket per client IP. A bucket refills
// Requests tokens per Window; a request without a token may wait for one
// while at most Queue requests of that client are already waiting.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	every   rate.Limit
	burst   int
	queue   int
	idle    time.Duration
	now     func() time.Time
}

// NewRateLimiter builds a limiter from the rate limit settings.
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		every:   rate.Every(cfg.Window / time.Duration(cfg.Requests)),
		burst:   cfg.Requests,
		queue:   cfg.Queue,
		idle:    3 * cfg.Window,
		now:     time.Now,
	}
}

func (l *RateLimiter) client(key string) *clientLimiter {
	now := l.now()
	cl, ok := l.clients[key]
	if !ok {
		if len(l.clients) >= sweepThreshold {
			for k, v := range l.clients {
				if v.waiting == 0 && now.Sub(v.lastSeen) > l.idle {
					delete(l.clients, k)
				}
			}
		}
		cl = &clientLimiter{limiter: rate.NewLimiter(l.every, l.burst)}
		l.clients[key] = cl
	}
	cl.lastSeen = now
	return cl
}

// Middleware returns the gin handler enforcing the limit.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		l.mu.Lock()
		cl := l.client(c.ClientIP())
		now := l.now()
		r := cl.limiter.ReserveN(now, 1)
		delay := r.DelayFrom(now)
		if delay == 0 {
			l.mu.Unlock()
			c.Next()
			return
		}
		if !r.OK() || cl.waiting >= l.queue {
			r.Cancel()
			l.mu.Unlock()
			c.Header("Retry-After", retryAfter(delay))
			response.TooManyRequests(c, GetRequestID(c))
			return
		}
		cl.waiting++
		l.mu.Unlock()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			l.release(cl)
			c.Next()
		case <-c.Request.Context().Done():
			r.Cancel()
			l.release(cl)
			c.AbortWithStatus(response.StatusClientClosedRequest)
		}
	}
}

func (l *RateLimiter) release(cl *clientLimiter) {
	l.mu.Lock()
	cl.waiting--
	l.mu.Unlock()
}

func retryAfter(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 1 || d == rate.InfDuration {
		secs = 1
	}
	return strconv.Itoa(secs)
}

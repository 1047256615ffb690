package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/gigmarket/backend/pkg/logger"
	"go.uber.org/zap"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	visitors map[string]*visitor
	mu       *sync.RWMutex

	rps   rate.Limit
	burst int
	ttl   time.Duration
}

func newRateLimiter(rps, burst int, ttl time.Duration) *rateLimiter {
	return &rateLimiter{
		visitors: make(map[string]*visitor),
		mu:       &sync.RWMutex{},
		rps:      rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
	}
}

func (r *rateLimiter) getVisitor(ip string, now time.Time) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, exists := r.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(r.rps, r.burst)
		r.visitors[ip] = &visitor{limiter, now}
		return limiter
	}

	v.lastSeen = now
	return v.limiter
}

func (r *rateLimiter) cleanupVisitors(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ip, v := range r.visitors {
		if now.Sub(v.lastSeen) > r.ttl {
			delete(r.visitors, ip)
		}
	}
}

func (r *rateLimiter) cleanupLoop() {
	for {
		time.Sleep(time.Minute)
		r.cleanupVisitors(time.Now())
	}
}

// Limit throttles requests per client IP with a token bucket of rps and burst.
// Clients idle for longer than ttl are forgotten.
func Limit(rps int, burst int, ttl time.Duration) gin.HandlerFunc {
	l := newRateLimiter(rps, burst, ttl)

	go l.cleanupLoop()

	return func(c *gin.Context) {
		ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil {
			ip = c.ClientIP()
		}

		if !l.getVisitor(ip, time.Now()).Allow() {
			logger.Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}

package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/capgen/backend/internal/models"
	"golang.org/x/time/rate"
)

const staleAfter = 3 * time.Minute

// IPRateLimiter keeps one token bucket per client address. It is advisory:
// counters are in-process and reset on restart.
type IPRateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*client
	limit    rate.Limit
	burst    int
	lastScan time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(perMinute, burst int) *IPRateLimiter {
	limit := rate.Limit(float64(perMinute) / 60.0)
	if perMinute <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &IPRateLimiter{
		clients:  make(map[string]*client),
		limit:    limit,
		burst:    burst,
		lastScan: time.Now(),
	}
}

func (l *IPRateLimiter) allow(addr string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastScan) > staleAfter {
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) > staleAfter {
				delete(l.clients, key)
			}
		}
		l.lastScan = now
	}

	c, ok := l.clients[addr]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[addr] = c
	}
	c.lastSeen = now
	return c.limiter.Allow()
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !l.allow(host) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = sonic.ConfigDefault.NewEncoder(w).Encode(models.ErrorResponse{
				Detail: "rate limit exceeded, try again later",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

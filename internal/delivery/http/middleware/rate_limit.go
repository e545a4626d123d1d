package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"interiorhub-web/internal/infrastructure/metrics"
	"interiorhub-web/pkg/utils"

	"golang.org/x/time/rate"
)

// Request classes with separate buckets per IP
const (
	classRead  = "read"
	classWrite = "write"
)

// RatePolicy is one token bucket shape.
type RatePolicy struct {
	Limit rate.Limit
	Burst int
}

// PerMinute builds a policy from a per-minute budget.
func PerMinute(n, burst int) RatePolicy {
	return RatePolicy{Limit: rate.Every(time.Minute / time.Duration(max(n, 1))), Burst: burst}
}

// client is one IP's buckets
type client struct {
	read     *rate.Limiter
	write    *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles per IP, with a separate, tighter budget for form POSTs.
// Health and metrics endpoints are never throttled.
type RateLimiter struct {
	clients       map[string]*client
	mu            sync.Mutex
	read          RatePolicy
	write         RatePolicy
	exempt        map[string]struct{}
	cleanupPeriod time.Duration
	clientTTL     time.Duration
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewRateLimiter starts the background cleanup of idle clients.
// cleanupPeriod: how often to sweep; clientTTL: idle time before a client is forgotten.
func NewRateLimiter(ctx context.Context, read, write RatePolicy, cleanupPeriod, clientTTL time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		read:    read,
		write:   write,
		exempt: map[string]struct{}{
			"/health":        {},
			"/api/v1/health": {},
			"/metrics":       {},
		},
		cleanupPeriod: cleanupPeriod,
		clientTTL:     clientTTL,
	}
	rl.ctx, rl.cancel = context.WithCancel(ctx)
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := rl.exempt[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			class := classRead
			if r.Method == http.MethodPost {
				class = classWrite
			}

			limiter := rl.limiter(utils.ClientIP(r), class)
			if !limiter.Allow() {
				metrics.RateLimited.WithLabelValues(class).Inc()
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter(limiter)))
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) limiter(ip, class string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, exists := rl.clients[ip]
	if !exists {
		c = &client{
			read:  rate.NewLimiter(rl.read.Limit, rl.read.Burst),
			write: rate.NewLimiter(rl.write.Limit, rl.write.Burst),
		}
		rl.clients[ip] = c
	}
	c.lastSeen = time.Now()

	if class == classWrite {
		return c.write
	}
	return c.read
}

// retryAfter is the whole seconds until the next token, at least 1.
func retryAfter(l *rate.Limiter) int {
	if l.Limit() <= 0 {
		return 1
	}
	// tolerance keeps 1/(1/60) from rounding up to 61
	secs := math.Ceil(1/float64(l.Limit()) - 1e-9)
	return max(int(secs), 1)
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.ctx.Done():
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, c := range rl.clients {
		if time.Since(c.lastSeen) > rl.clientTTL {
			delete(rl.clients, ip)
		}
	}
}

// Shutdown stops the cleanup goroutine.
func (rl *RateLimiter) Shutdown() {
	rl.cancel()
}

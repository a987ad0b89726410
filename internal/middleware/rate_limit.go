package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
	"vault_backend/pkg/resp"

	"golang.org/x/time/rate"
)

type IPRateLimiter struct {
	ips         map[string]*rateLimiterWithTime
	mu          sync.Mutex
	rate        rate.Limit
	burst       int
	expiry      time.Duration
	lastCleanup time.Time
}

type rateLimiterWithTime struct {
	limiter   *rate.Limiter
	lastUsage time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:         make(map[string]*rateLimiterWithTime),
		rate:        r,
		burst:       b,
		expiry:      time.Hour, // Неиспользуемые лимитеры удаляются через час
		lastCleanup: time.Now(),
	}
}

func (i *IPRateLimiter) Allow(ip string) bool {
	return i.getLimiter(ip).Allow()
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := time.Now()
	if now.Sub(i.lastCleanup) > time.Minute {
		i.cleanup(now)
	}

	wrapper, exists := i.ips[ip]
	if !exists {
		wrapper = &rateLimiterWithTime{
			limiter: rate.NewLimiter(i.rate, i.burst),
		}
		i.ips[ip] = wrapper
	}
	wrapper.lastUsage = now

	return wrapper.limiter
}

// cleanup Вызывается под блокировкой
func (i *IPRateLimiter) cleanup(now time.Time) {
	for ip, wrapper := range i.ips {
		if now.Sub(wrapper.lastUsage) > i.expiry {
			delete(i.ips, ip)
		}
	}
	i.lastCleanup = now
}

// RateLimit ограничивает частоту запросов с одного IP
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := NewIPRateLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				resp.WriteError(w, http.StatusTooManyRequests, "RateLimited", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP RemoteAddr уже переписан chi middleware.RealIP
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

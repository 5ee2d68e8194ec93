package http

import (
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	apperrors "github.com/spec-kit/ticket-admin/pkg/util"
)

// RateLimiter applies a per-client token bucket to the credential endpoints,
// keyed by remote IP. A non-positive rate disables limiting.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewRateLimiter builds a limiter allowing perMinute requests per client.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if perMinute <= 0 {
		return &RateLimiter{}
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	lim, ok := rl.visitors[key]
	if !ok {
		lim = rate.NewLimiter(rl.limit, rl.burst)
		rl.visitors[key] = lim
	}
	return lim
}

// Handle rejects clients that exceed the configured rate.
func (rl *RateLimiter) Handle(c *fiber.Ctx) error {
	if rl.visitors == nil {
		return c.Next()
	}
	if !rl.limiter(c.IP()).Allow() {
		return apperrors.NewDomainError("RATE_LIMITED", "too many requests", http.StatusTooManyRequests, nil)
	}
	return c.Next()
}

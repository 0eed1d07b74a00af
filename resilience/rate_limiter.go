package resilience

import (
	"math"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig configures a rate limiter.
type RateLimiterConfig struct {
	// Name identifies the limiter in logs, e.g. the provider id.
	Name string
	// Rate is the number of calls allowed per second. Zero or negative
	// disables the limiter.
	Rate float64
	// Burst is the bucket size. Defaults to Rate rounded up, at least 1.
	Burst int
}

// RateLimiter is a token bucket over golang.org/x/time/rate. It never
// blocks: a caller that finds the bucket empty is told how long to wait so
// the wait can travel back to the client as a Retry-After hint.
type RateLimiter struct {
	name    string
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter. A disabled one admits every call.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{name: cfg.Name}
	if cfg.Rate <= 0 {
		return rl
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = int(math.Ceil(cfg.Rate))
	}
	rl.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), burst)
	return rl
}

// Name returns the configured name.
func (rl *RateLimiter) Name() string { return rl.name }

// Allow takes one token if one is free. Otherwise it takes nothing and
// returns the time until a token will be available.
func (rl *RateLimiter) Allow() (wait time.Duration, ok bool) {
	if rl.limiter == nil {
		return 0, true
	}
	now := time.Now()
	res := rl.limiter.ReserveN(now, 1)
	if !res.OK() {
		return 0, false
	}
	if d := res.DelayFrom(now); d > 0 {
		res.CancelAt(now)
		return d, false
	}
	return 0, true
}

// RetryAfterSeconds rounds a wait up to whole seconds, at least 1, the
// unit a Retry-After header carries.
func RetryAfterSeconds(wait time.Duration) int {
	s := int(math.Ceil(wait.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}

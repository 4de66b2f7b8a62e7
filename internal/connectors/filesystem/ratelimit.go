package filesystem

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitConfig holds watch delivery throttling configuration.
type RateLimitConfig struct {
	// FilesPerSecond is the sustained delivery rate.
	FilesPerSecond float64
	// BurstSize is the maximum number of files delivered back to back.
	BurstSize int
}

// DefaultRateLimit matches the default watch settings.
var DefaultRateLimit = RateLimitConfig{FilesPerSecond: 5.0, BurstSize: 10}

// RateLimiter throttles delivery of watched files using a token bucket.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter. Non-positive values fall back
// to DefaultRateLimit.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.FilesPerSecond <= 0 {
		cfg.FilesPerSecond = DefaultRateLimit.FilesPerSecond
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = DefaultRateLimit.BurstSize
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.FilesPerSecond), cfg.BurstSize),
	}
}

// Wait blocks until a file can be delivered without exceeding the rate.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

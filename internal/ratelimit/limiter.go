// Package ratelimit paces outbound exchange calls on the client side.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is a token bucket shared by every operation of one exchange client.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a Limiter allowing requests per period with a burst of requests.
func New(requests int, period time.Duration) *Limiter {
	rps := float64(requests) / period.Seconds()
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(rps), requests)}
}

// NewWithBurst creates a Limiter refilling perSecond tokens each second with
// room for burst. A non-positive burst falls back to perSecond.
func NewWithBurst(perSecond, burst int) *Limiter {
	if burst <= 0 {
		burst = perSecond
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Wait blocks until a request is allowed or the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

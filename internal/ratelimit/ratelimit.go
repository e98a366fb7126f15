// Package ratelimit admits service calls from a process-local token bucket.
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"jot/internal/errors"
)

const defaultPerMinute = 60

// Limiter wraps a token bucket sized by requests per minute: the bucket
// holds one minute of tokens, starts full, and refills evenly (one token
// per second at the default of 60). State is process-local; nothing is
// persisted across restarts.
type Limiter struct {
	bucket *rate.Limiter
	now    func() time.Time // swapped in tests for a deterministic clock
}

// New builds a limiter admitting perMinute calls per minute.
func New(perMinute int) *Limiter {
	if perMinute <= 0 {
		perMinute = defaultPerMinute
	}
	return &Limiter{
		bucket: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
		now:    time.Now,
	}
}

// Admit consumes one token. When the bucket is empty it reports
// RateLimited carrying the delay until the next token becomes available;
// the reservation is cancelled so a denied call consumes nothing.
// Safe for concurrent use.
func (l *Limiter) Admit() error {
	now := l.now()
	res := l.bucket.ReserveN(now, 1)
	if !res.OK() {
		return errors.NewRateLimited(time.Second)
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return errors.NewRateLimited(delay)
	}
	return nil
}

package control

import (
	"math"
	"time"
)

// Backoff spaces out retries after consecutive queue failures.
type Backoff struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultBackoff returns 1s, 2s, 4s ... capped at 30s.
func DefaultBackoff() Backoff {
	return Backoff{
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
	}
}

// Delay calculates InitialDelay * 2^attempt, capped at MaxDelay.
func (b Backoff) Delay(attempt int) time.Duration {
	delay := float64(b.InitialDelay) * math.Pow(2, float64(attempt))
	if delay > float64(b.MaxDelay) {
		return b.MaxDelay
	}
	return time.Duration(delay)
}

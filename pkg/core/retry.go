package core

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/PKwhiting/shopify-go/pkg/errors"
)

// Default backoff shape. Both are policy knobs, not hard constants:
// Shopify doesn't document a clamp, so callers may tune them.
const (
	DefaultBackoffMultiplier = 2.0
	DefaultMaxDelay          = 60 * time.Second
)

// Backoff computes the delay before the next retry attempt.
// An explicit server Retry-After hint always wins; otherwise it is
// exponential with full-range jitter, clamped at Max.
type Backoff struct {
	Base       time.Duration // base delay; 0 means retry immediately
	Multiplier float64       // growth factor per attempt (default 2)
	Max        time.Duration // upper clamp on any computed delay

	mu     sync.Mutex
	jitter *rand.Rand // localized jitter source, injectable for tests
}

// NewBackoff creates a Backoff with the default multiplier and clamp.
func NewBackoff(base time.Duration) *Backoff {
	return &Backoff{
		Base:       base,
		Multiplier: DefaultBackoffMultiplier,
		Max:        DefaultMaxDelay,
		jitter:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand swaps the jitter source. A seeded source makes delays
// reproducible in tests.
func (b *Backoff) SetRand(r *rand.Rand) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jitter = r
}

// NextDelay returns the wait before attempt+1. Never negative.
func (b *Backoff) NextDelay(attempt int, failure *errors.APIError) time.Duration {
	if failure != nil && failure.RetryAfter > 0 {
		return failure.RetryAfter
	}
	if b.Base <= 0 {
		return 0
	}

	multiplier := b.Multiplier
	if multiplier <= 0 {
		multiplier = DefaultBackoffMultiplier
	}
	max := b.Max
	if max <= 0 {
		max = DefaultMaxDelay
	}

	delay := time.Duration(float64(b.Base) * math.Pow(multiplier, float64(attempt)))
	if delay > max || delay <= 0 { // <= 0 catches float overflow
		delay = max
	}

	// Add jitter in [0, delay) to spread out synchronized retries.
	b.mu.Lock()
	if b.jitter == nil {
		b.jitter = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	jittered := delay + time.Duration(b.jitter.Float64()*float64(delay))
	b.mu.Unlock()

	if jittered > max {
		jittered = max
	}
	return jittered
}

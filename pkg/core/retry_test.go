package core

import (
	"math/rand"
	"testing"
	"time"

	"github.com/PKwhiting/shopify-go/pkg/errors"
)

func seededBackoff(base time.Duration, seed int64) *Backoff {
	b := NewBackoff(base)
	b.SetRand(rand.New(rand.NewSource(seed)))
	return b
}

func TestBackoff_Deterministic(t *testing.T) {
	a := seededBackoff(time.Second, 42)
	b := seededBackoff(time.Second, 42)

	for attempt := 0; attempt < 6; attempt++ {
		da := a.NextDelay(attempt, nil)
		db := b.NextDelay(attempt, nil)
		if da != db {
			t.Fatalf("attempt %d: same seed produced %v vs %v", attempt, da, db)
		}
	}
}

func TestBackoff_GrowsAndClamps(t *testing.T) {
	b := seededBackoff(time.Second, 1)

	prevFloor := time.Duration(0)
	for attempt := 0; attempt < 10; attempt++ {
		delay := b.NextDelay(attempt, nil)
		if delay < 0 {
			t.Fatalf("attempt %d: negative delay %v", attempt, delay)
		}
		if delay > DefaultMaxDelay {
			t.Fatalf("attempt %d: delay %v exceeds clamp %v", attempt, delay, DefaultMaxDelay)
		}
		// The un-jittered floor (base * 2^attempt, clamped) must not shrink.
		floor := time.Duration(float64(time.Second) * float64(int(1)<<attempt))
		if floor > DefaultMaxDelay {
			floor = DefaultMaxDelay
		}
		if floor < prevFloor {
			t.Fatalf("floor went backwards at attempt %d", attempt)
		}
		prevFloor = floor
	}
}

func TestBackoff_ZeroBaseMeansImmediateRetry(t *testing.T) {
	b := seededBackoff(0, 7)
	for attempt := 0; attempt < 4; attempt++ {
		if d := b.NextDelay(attempt, nil); d != 0 {
			t.Fatalf("attempt %d: want 0, got %v", attempt, d)
		}
	}
}

func TestBackoff_RetryAfterWins(t *testing.T) {
	b := seededBackoff(time.Second, 7)
	failure := &errors.APIError{
		Kind:       errors.KindRateLimited,
		Retryable:  true,
		RetryAfter: 5 * time.Second,
	}
	if d := b.NextDelay(0, failure); d != 5*time.Second {
		t.Fatalf("want explicit 5s, got %v", d)
	}

	// Without a hint the exponential path applies.
	failure.RetryAfter = 0
	d := b.NextDelay(0, failure)
	if d < time.Second || d >= 2*time.Second {
		t.Fatalf("want jittered delay in [1s, 2s), got %v", d)
	}
}

func TestBackoff_CustomClamp(t *testing.T) {
	b := &Backoff{Base: time.Second, Multiplier: 2, Max: 3 * time.Second}
	b.SetRand(rand.New(rand.NewSource(11)))
	for attempt := 0; attempt < 12; attempt++ {
		if d := b.NextDelay(attempt, nil); d > 3*time.Second {
			t.Fatalf("attempt %d: delay %v exceeds custom clamp", attempt, d)
		}
	}
}

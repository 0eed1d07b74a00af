package resilience

import (
	"math"
	"time"
)

// DefaultBaseDelay is the exponential base used when no server hint is present.
const DefaultBaseDelay = time.Second

// maxShift is the largest exponent for which base<<attempt fits a Duration
// at the default base.
const maxShift = 33

// Backoff computes retry delays. The zero value uses DefaultBaseDelay and no cap.
type Backoff struct {
	// Base is multiplied by 2^attempt when no hint is given.
	Base time.Duration
	// Max caps every delay, hinted or not. Zero means uncapped.
	Max time.Duration
}

// ComputeDelay returns the wait before the retry that follows the given
// zero-based attempt using a one second base and no cap.
//
// hintSeconds, when non-nil, overrides the exponential policy and yields
// hintSeconds*1000 ms.
func ComputeDelay(attempt int, hintSeconds *int) time.Duration {
	return Backoff{}.Delay(attempt, hintSeconds)
}

// Delay returns the wait for attempt with an optional server hint in seconds.
func (b Backoff) Delay(attempt int, hintSeconds *int) time.Duration {
	var d time.Duration
	if hintSeconds != nil {
		d = hintDelay(*hintSeconds)
	} else {
		d = b.exponential(attempt)
	}
	if b.Max > 0 && d > b.Max {
		d = b.Max
	}
	return d
}

// hintDelay converts a hint to a Duration, saturating instead of wrapping.
// Negative hints mean no wait.
func hintDelay(seconds int) time.Duration {
	switch {
	case seconds <= 0:
		return 0
	case int64(seconds) > math.MaxInt64/int64(time.Second):
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds) * time.Second
}

func (b Backoff) exponential(attempt int) time.Duration {
	base := b.Base
	if base <= 0 {
		base = DefaultBaseDelay
	}
	if attempt < 0 {
		attempt = 0
	}
	if attempt > maxShift {
		return time.Duration(math.MaxInt64)
	}
	f := float64(base) * math.Pow(2, float64(attempt))
	if f >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(f)
}

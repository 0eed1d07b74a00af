package resilience

import (
	"testing"
	"time"
)

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "openai"})
	for i := 0; i < 100; i++ {
		if _, ok := rl.Allow(); !ok {
			t.Fatalf("call %d rejected by a disabled limiter", i)
		}
	}
	if rl.Name() != "openai" {
		t.Errorf("Name() = %q", rl.Name())
	}
}

func TestRateLimiter_BurstThenWait(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "claude", Rate: 0.5, Burst: 2})
	for i := 0; i < 2; i++ {
		if _, ok := rl.Allow(); !ok {
			t.Fatalf("call %d within burst rejected", i)
		}
	}
	wait, ok := rl.Allow()
	if ok {
		t.Fatal("expected the third call to be limited")
	}
	if wait <= time.Second || wait > 2*time.Second {
		t.Errorf("expected a wait near 2s at 0.5/s, got %s", wait)
	}

	// A rejected call must not consume the next token.
	again, ok := rl.Allow()
	if ok || again > wait {
		t.Errorf("expected the same or smaller wait, got %s (ok=%v)", again, ok)
	}
}

func TestRateLimiter_DefaultBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 2.5})
	allowed := 0
	for i := 0; i < 10; i++ {
		if _, ok := rl.Allow(); ok {
			allowed++
		}
	}
	if allowed != 3 {
		t.Errorf("expected a burst of 3, got %d", allowed)
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		wait time.Duration
		want int
	}{
		{0, 1},
		{10 * time.Millisecond, 1},
		{time.Second, 1},
		{1500 * time.Millisecond, 2},
		{30 * time.Second, 30},
	}
	for _, tt := range tests {
		if got := RetryAfterSeconds(tt.wait); got != tt.want {
			t.Errorf("RetryAfterSeconds(%s) = %d, want %d", tt.wait, got, tt.want)
		}
	}
}

package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBulkhead_Disabled(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "openai"})
	for i := 0; i < 100; i++ {
		if _, err := b.Acquire(context.Background()); err != nil {
			t.Fatalf("disabled bulkhead rejected call %d: %v", i, err)
		}
	}
	if b.InUse() != 0 {
		t.Errorf("disabled bulkhead should not track slots, got %d", b.InUse())
	}
}

func TestBulkhead_RejectsWhenFull(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "claude", MaxConcurrent: 2})
	r1, err := b.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	r2, err := b.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Acquire(context.Background()); !errors.Is(err, ErrBulkheadFull) || !IsRejection(err) {
		t.Fatalf("expected ErrBulkheadFull, got %v", err)
	}

	r1()
	r3, err := b.Acquire(context.Background())
	if err != nil {
		t.Fatalf("slot should be free after release: %v", err)
	}
	r2()
	r3()
	if b.InUse() != 0 {
		t.Errorf("expected all slots free, got %d", b.InUse())
	}
}

func TestBulkhead_Wait(t *testing.T) {
	tests := []struct {
		name    string
		release bool
		cancel  bool
		want    error
	}{
		{"slot freed", true, false, nil},
		{"timeout", false, false, ErrBulkheadTimeout},
		{"canceled", false, true, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1, MaxWait: 50 * time.Millisecond})
			held, err := b.Acquire(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.release {
				time.AfterFunc(5*time.Millisecond, held)
			}
			if tt.cancel {
				cancel()
			}

			_, err = b.Acquire(ctx)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

package resilience

import (
	"context"
	"errors"
	"time"
)

// Bulkhead errors.
var (
	ErrBulkheadFull    = errors.New("bulkhead is full")
	ErrBulkheadTimeout = errors.New("bulkhead wait timeout")
)

// BulkheadConfig configures a bulkhead.
type BulkheadConfig struct {
	// Name identifies the bulkhead in logs, e.g. the provider id.
	Name string
	// MaxConcurrent is the number of calls allowed in flight. Zero or
	// negative disables the limit.
	MaxConcurrent int
	// MaxWait is how long to wait for a slot. Zero fails immediately.
	MaxWait time.Duration
}

// Bulkhead caps concurrent calls to one upstream so a burst against one
// provider cannot exhaust the process.
type Bulkhead struct {
	name    string
	maxWait time.Duration
	sem     chan struct{}
}

// NewBulkhead creates a bulkhead. A disabled one admits every call.
func NewBulkhead(cfg BulkheadConfig) *Bulkhead {
	b := &Bulkhead{name: cfg.Name, maxWait: cfg.MaxWait}
	if cfg.MaxConcurrent > 0 {
		b.sem = make(chan struct{}, cfg.MaxConcurrent)
	}
	return b
}

// Name returns the configured name.
func (b *Bulkhead) Name() string { return b.name }

// Acquire takes a slot and returns the func that gives it back. It fails
// with ErrBulkheadFull, ErrBulkheadTimeout or the context's error.
func (b *Bulkhead) Acquire(ctx context.Context) (release func(), err error) {
	if b.sem == nil {
		return func() {}, nil
	}
	select {
	case b.sem <- struct{}{}:
		return b.release, nil
	default:
	}
	if b.maxWait <= 0 {
		return nil, ErrBulkheadFull
	}

	timer := time.NewTimer(b.maxWait)
	defer timer.Stop()
	select {
	case b.sem <- struct{}{}:
		return b.release, nil
	case <-timer.C:
		return nil, ErrBulkheadTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *Bulkhead) release() { <-b.sem }

// InUse returns the number of slots taken.
func (b *Bulkhead) InUse() int { return len(b.sem) }

// IsRejection reports whether err came from a full bulkhead.
func IsRejection(err error) bool {
	return errors.Is(err, ErrBulkheadFull) || errors.Is(err, ErrBulkheadTimeout)
}

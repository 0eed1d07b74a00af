package dispatch

import (
	"sort"
	"sync"
)

// Board holds the latest outcome of every provider, keyed by provider id.
// It is safe for concurrent use: readers take snapshots while provider
// goroutines commit their own cells.
type Board struct {
	mu    sync.RWMutex
	cells map[string]Outcome
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{cells: make(map[string]Outcome)}
}

// reset marks every selection Pending under submission in one step, so no
// observer sees a mix of old results and new pending cells.
func (b *Board) reset(submission uint64, sels []Selection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sel := range sels {
		b.cells[sel.Provider] = pendingOutcome(sel, submission)
	}
}

// commit stores a resolved outcome if its cell still belongs to the same
// submission and is pending. It reports whether the outcome was stored.
func (b *Board) commit(o Outcome) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	cur, ok := b.cells[o.Provider]
	if !ok || cur.Submission != o.Submission || !cur.IsPending() {
		return false
	}
	b.cells[o.Provider] = o
	return true
}

// Get returns the current outcome of provider.
func (b *Board) Get(provider string) (Outcome, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	o, ok := b.cells[provider]
	return o, ok
}

// Snapshot returns a copy of every cell sorted by provider id.
func (b *Board) Snapshot() []Outcome {
	b.mu.RLock()
	out := make([]Outcome, 0, len(b.cells))
	for _, o := range b.cells {
		out = append(out, o)
	}
	b.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out
}

// Busy reports whether any provider is still pending.
func (b *Board) Busy() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, o := range b.cells {
		if o.IsPending() {
			return true
		}
	}
	return false
}

package dispatch

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/trace"
)

// Submission is one dispatched query. Its outcomes arrive on Updates in the
// order the providers resolved.
type Submission struct {
	ID         uint64
	Query      string
	Selections []Selection

	updates chan Outcome
	done    chan struct{}
	span    trace.Span

	mu        sync.Mutex
	results   []Outcome
	remaining int
}

func newSubmission(id uint64, query string, sels []Selection, span trace.Span) *Submission {
	return &Submission{
		ID:         id,
		Query:      query,
		Selections: sels,
		updates:    make(chan Outcome, len(sels)),
		done:       make(chan struct{}),
		span:       span,
		remaining:  len(sels),
	}
}

// Updates returns a channel that yields every resolved outcome once and is
// closed after the last one. It is buffered, so an idle reader never
// blocks provider goroutines.
func (s *Submission) Updates() <-chan Outcome { return s.updates }

// Done is closed once every provider has resolved.
func (s *Submission) Done() <-chan struct{} { return s.done }

// Wait blocks until every provider has resolved or ctx is done and returns
// the outcomes in resolution order. On ctx expiry it returns those resolved
// so far together with ctx.Err().
func (s *Submission) Wait(ctx context.Context) ([]Outcome, error) {
	select {
	case <-s.done:
		return s.Results(), nil
	case <-ctx.Done():
		return s.Results(), ctx.Err()
	}
}

// Results returns the outcomes resolved so far in resolution order.
func (s *Submission) Results() []Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Outcome, len(s.results))
	copy(out, s.results)
	return out
}

func (s *Submission) deliver(o Outcome) {
	s.mu.Lock()
	s.results = append(s.results, o)
	s.updates <- o
	s.remaining--
	last := s.remaining == 0
	s.mu.Unlock()

	if last {
		close(s.updates)
		close(s.done)
		s.span.End()
	}
}

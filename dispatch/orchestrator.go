package dispatch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	apperrors "github.com/kbukum/llmcouncil/errors"
	"github.com/kbukum/llmcouncil/logger"
	"github.com/kbukum/llmcouncil/observability"
)

// Querier answers a query for one provider. *llm.Adapter implements it.
type Querier interface {
	Name() string
	DefaultModel() string
	Supports(model string) bool
	Query(ctx context.Context, text, model string) (string, error)
}

// Selection picks a provider and one of its models for a submission.
// An empty Model selects the provider's default.
type Selection struct {
	Provider string
	Model    string
}

// Dispatch validation errors. They are returned wrapped in an AppError.
var (
	ErrEmptyQuery        = fmt.Errorf("dispatch: query is empty")
	ErrNoSelections      = fmt.Errorf("dispatch: no providers selected")
	ErrUnknownProvider   = fmt.Errorf("dispatch: unknown provider")
	ErrUnsupportedModel  = fmt.Errorf("dispatch: unsupported model")
	ErrDuplicateProvider = fmt.Errorf("dispatch: provider selected twice")
	errPanic             = fmt.Errorf("dispatch: provider call panicked")
)

// Orchestrator starts provider calls concurrently and records their outcomes.
type Orchestrator struct {
	queriers map[string]Querier
	board    *Board
	seq      atomic.Uint64
	log      *logger.Logger
	tracer   trace.Tracer
	metrics  *observability.Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the orchestrator's logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.log = l
		}
	}
}

// WithTracer records a span per submission and per provider call.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithMetrics records submission, call and outcome metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithBoard shares an existing board, e.g. with a renderer.
func WithBoard(b *Board) Option {
	return func(o *Orchestrator) {
		if b != nil {
			o.board = b
		}
	}
}

// New creates an orchestrator over the given provider queriers.
func New(queriers []Querier, opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		queriers: make(map[string]Querier, len(queriers)),
		board:    NewBoard(),
		log:      logger.Get("dispatch"),
		tracer:   noop.NewTracerProvider().Tracer("dispatch"),
	}
	for _, q := range queriers {
		if _, dup := o.queriers[q.Name()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProvider, q.Name())
		}
		o.queriers[q.Name()] = q
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Board returns the board the orchestrator commits outcomes to.
func (o *Orchestrator) Board() *Board { return o.board }

// Providers returns the sorted ids of all registered providers.
func (o *Orchestrator) Providers() []string {
	ids := make([]string, 0, len(o.queriers))
	for id := range o.queriers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Dispatch validates the query and selections, resets the selected cells to
// Pending under a new submission id and starts one goroutine per selection.
// It returns without waiting for any provider.
func (o *Orchestrator) Dispatch(ctx context.Context, query string, sels []Selection) (*Submission, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.InvalidInput("query", "query must not be blank").WithCause(ErrEmptyQuery)
	}
	resolved, err := o.resolve(sels)
	if err != nil {
		return nil, err
	}

	id := o.seq.Add(1)
	ctx = logger.ContextWithSubmissionID(ctx, id)
	ctx, span := o.tracer.Start(ctx, observability.SpanSubmission, trace.WithAttributes(
		attribute.Int64(observability.AttrSubmissionID, int64(id)),
		attribute.Int("council.providers", len(resolved)),
	))

	sub := newSubmission(id, query, resolved, span)
	o.board.reset(id, resolved)
	if o.metrics != nil {
		o.metrics.RecordSubmission(ctx, len(resolved))
	}
	o.log.WithContext(ctx).Info("submission dispatched", logger.Fields("providers", len(resolved)))

	started := time.Now()
	for _, sel := range resolved {
		go o.run(ctx, sub, sel, started)
	}
	return sub, nil
}

// resolve checks every selection and fills in default models.
func (o *Orchestrator) resolve(sels []Selection) ([]Selection, error) {
	if len(sels) == 0 {
		return nil, apperrors.InvalidInput("selections", "at least one provider is required").WithCause(ErrNoSelections)
	}
	seen := make(map[string]bool, len(sels))
	out := make([]Selection, 0, len(sels))
	for _, sel := range sels {
		q, ok := o.queriers[sel.Provider]
		if !ok {
			return nil, apperrors.NotFound("provider", sel.Provider).WithCause(ErrUnknownProvider)
		}
		if seen[sel.Provider] {
			return nil, apperrors.InvalidInput("selections", "provider "+sel.Provider+" selected twice").WithCause(ErrDuplicateProvider)
		}
		seen[sel.Provider] = true
		if sel.Model == "" {
			sel.Model = q.DefaultModel()
		}
		if !q.Supports(sel.Model) {
			return nil, apperrors.InvalidInput("model", fmt.Sprintf("%s does not offer model %q", sel.Provider, sel.Model)).WithCause(ErrUnsupportedModel)
		}
		out = append(out, sel)
	}
	return out, nil
}

// run performs one provider call and commits its outcome.
func (o *Orchestrator) run(ctx context.Context, sub *Submission, sel Selection, started time.Time) {
	ctx, call := observability.StartCall(ctx, o.tracer, sel.Provider, sel.Model, sub.ID, o.metrics)
	log := o.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldProvider, sel.Provider, logger.FieldModel, sel.Model))

	out := pendingOutcome(sel, sub.ID)
	text, err := safeQuery(ctx, o.queriers[sel.Provider], sub.Query, sel.Model)
	out.Duration = time.Since(started)
	if err != nil {
		appErr, status := classify(sel.Provider, err)
		out = out.fail(appErr, status)
		call.End(ctx, observability.StatusFailure, err)
		log.Warn("provider failed", logger.MergeWithError(logger.Fields(logger.FieldStatus, status), err))
	} else {
		out = out.succeed(text)
		call.End(ctx, observability.StatusSuccess, nil)
		log.Debug("provider answered", logger.DurationFields("query", out.Duration))
	}

	if !o.board.commit(out) {
		log.Debug("dropping stale outcome")
	}
	sub.deliver(out)
}

// safeQuery converts a panic inside a provider call into an error scoped to
// that provider.
func safeQuery(ctx context.Context, q Querier, text, model string) (answer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errPanic, r)
		}
	}()
	return q.Query(ctx, text, model)
}

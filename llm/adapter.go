package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/llmcouncil/httpclient"
	"github.com/kbukum/llmcouncil/logger"
)

// RetryObserver receives one event per retry an adapter schedules.
type RetryObserver interface {
	RecordRetry(ctx context.Context, provider string, status int, delay time.Duration)
}

// Adapter is a config-driven client for one provider's proxy endpoint.
//
// It composes the council's HTTP client, which owns retry and status
// classification, with a Dialect that owns the provider's model set and
// response shape.
type Adapter struct {
	client   *httpclient.Client
	dialect  Dialect
	name     string
	path     string
	model    string
	log      *logger.Logger
	tracer   trace.Tracer
	observer RetryObserver
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the adapter's logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}

// WithTracer records a span per query and per HTTP attempt.
func WithTracer(t trace.Tracer) Option {
	return func(a *Adapter) {
		if t != nil {
			a.tracer = t
		}
	}
}

// WithRetryObserver reports every scheduled retry to o.
func WithRetryObserver(o RetryObserver) Option {
	return func(a *Adapter) { a.observer = o }
}

// New creates an LLM adapter from config using the global dialect registry.
// The config's Dialect field must match a registered dialect name.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	dialect, err := GetDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	return newAdapter(dialect, cfg, opts)
}

// NewWithDialect creates an LLM adapter with an explicit dialect instance.
// Use this when you don't want to rely on the global dialect registry.
func NewWithDialect(dialect Dialect, cfg Config, opts ...Option) (*Adapter, error) {
	if dialect == nil {
		return nil, ErrNoDialect
	}
	if cfg.Dialect == "" {
		cfg.Dialect = dialect.Name()
	}
	return newAdapter(dialect, cfg, opts)
}

func newAdapter(dialect Dialect, cfg Config, opts []Option) (*Adapter, error) {
	cfg.applyDefaults()

	a := &Adapter{
		dialect: dialect,
		name:    cfg.Name,
		path:    cfg.Path,
		model:   cfg.Model,
		log:     logger.Get("llm"),
		tracer:  noop.NewTracerProvider().Tracer("llm"),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.WithFields(logger.Fields(logger.FieldProvider, a.name))
	if a.path == "" {
		a.path = dialect.ChatPath()
	}
	if a.model == "" {
		a.model = dialect.DefaultModel()
	}
	if !HasModel(dialect, a.model) {
		return nil, fmt.Errorf("%w %q for %s", ErrUnknownModel, a.model, dialect.Name())
	}

	retry := *cfg.Retry
	userOnRetry := retry.OnRetry
	retry.OnRetry = func(attempt int, err error, delay time.Duration) {
		status := httpclient.StatusOf(err)
		msg := "provider overloaded, retrying"
		if httpclient.IsRateLimit(err) {
			msg = "provider rate limited, retrying"
		}
		a.log.Warn(msg, logger.MergeWithError(logger.AttemptFields(a.name, attempt, delay), err))
		if a.observer != nil {
			a.observer.RecordRetry(context.Background(), a.name, status, delay)
		}
		if userOnRetry != nil {
			userOnRetry(attempt, err, delay)
		}
	}

	client, err := httpclient.New(httpclient.Config{
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout,
		Credential:        cfg.Credential,
		Headers:           cfg.Headers,
		Retry:             &retry,
		DefaultRetryAfter: cfg.DefaultRetryAfter,
	}, httpclient.WithTracer(a.tracer))
	if err != nil {
		return nil, fmt.Errorf("llm: create http client: %w", err)
	}
	a.client = client
	return a, nil
}

// Name returns the adapter name, the provider id unless configured otherwise.
func (a *Adapter) Name() string { return a.name }

// Dialect returns the dialect used by this adapter.
func (a *Adapter) Dialect() Dialect { return a.dialect }

// DefaultModel returns the model used when Query is called without one.
func (a *Adapter) DefaultModel() string { return a.model }

// Supports reports whether model belongs to the adapter's dialect.
func (a *Adapter) Supports(model string) bool { return HasModel(a.dialect, model) }

// Query sends text to the provider's proxy endpoint with the given model
// and returns the extracted answer. An empty model selects the default.
// Fetch errors are wrapped, never swallowed.
func (a *Adapter) Query(ctx context.Context, text, model string) (string, error) {
	if model == "" {
		model = a.model
	}
	if !HasModel(a.dialect, model) {
		return "", fmt.Errorf("%w %q for %s", ErrUnknownModel, model, a.name)
	}

	ctx, span := a.tracer.Start(ctx, "llm.query", trace.WithAttributes(
		attribute.String("llm.provider", a.name),
		attribute.String("llm.model", model),
	))
	defer span.End()

	body, err := a.dialect.BuildRequest(text, model)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("llm: %s: build request: %w", a.name, err)
	}

	start := time.Now()
	resp, err := a.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   a.path,
		Body:   body,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		a.log.Debug("query failed", logger.MergeWithError(logger.DurationFields("query", time.Since(start)), err))
		return "", fmt.Errorf("llm: %s: %w", a.name, err)
	}
	span.SetAttributes(attribute.Int("llm.attempts", resp.Attempts))

	text, err = a.dialect.ParseResponse(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected shape")
		return "", fmt.Errorf("llm: %s: %w", a.name, err)
	}
	a.log.Debug("query answered", logger.Fields(
		logger.FieldModel, model,
		logger.FieldAttempt, resp.Attempts,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return text, nil
}

package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Call tracks the span and metrics of one provider call within a submission.
type Call struct {
	Provider  string
	Model     string
	StartTime time.Time
	Metrics   *Metrics

	span trace.Span
}

// StartCall starts a provider-call span and records the call start metric.
// If metrics is nil, metric recording is silently skipped.
func StartCall(ctx context.Context, tracer trace.Tracer, provider, model string, submission uint64, metrics *Metrics) (context.Context, *Call) {
	attrs := append(providerAttrs(provider, model), attribute.Int64(AttrSubmissionID, int64(submission)))
	ctx, span := tracer.Start(ctx, SpanProviderCall, trace.WithAttributes(attrs...))

	c := &Call{
		Provider:  provider,
		Model:     model,
		StartTime: time.Now(),
		Metrics:   metrics,
		span:      span,
	}
	if metrics != nil {
		metrics.RecordCallStart(ctx, provider)
	}
	return ctx, c
}

// End ends the span and records the outcome metrics.
func (c *Call) End(ctx context.Context, status string, err error) {
	duration := c.Duration()

	if err != nil {
		c.span.RecordError(err)
		c.span.SetStatus(codes.Error, err.Error())
		c.span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}
	c.span.SetAttributes(
		attribute.String(AttrOutcome, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	c.span.End()

	if c.Metrics != nil {
		c.Metrics.RecordOutcome(ctx, c.Provider, status, duration)
	}
}

// Duration returns the elapsed time since the call started.
func (c *Call) Duration() time.Duration {
	return time.Since(c.StartTime)
}

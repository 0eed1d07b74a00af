package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome statuses recorded on metrics and spans.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds the council's metric instruments.
type Metrics struct {
	submissionTotal metric.Int64Counter
	callActive      metric.Int64UpDownCounter
	callDuration    metric.Float64Histogram
	outcomeTotal    metric.Int64Counter
	retryTotal      metric.Int64Counter
	retryDelay      metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	submissionTotal, err := meter.Int64Counter("council.submission.total",
		metric.WithDescription("Total number of dispatched submissions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating council.submission.total counter: %w", err)
	}

	callActive, err := meter.Int64UpDownCounter("council.call.active",
		metric.WithDescription("Number of provider calls currently pending"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating council.call.active gauge: %w", err)
	}

	callDuration, err := meter.Float64Histogram("council.call.duration",
		metric.WithDescription("Duration of provider calls including retries, in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating council.call.duration histogram: %w", err)
	}

	outcomeTotal, err := meter.Int64Counter("council.outcome.total",
		metric.WithDescription("Resolved provider outcomes by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating council.outcome.total counter: %w", err)
	}

	retryTotal, err := meter.Int64Counter("council.retry.total",
		metric.WithDescription("Retries scheduled after a retryable status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating council.retry.total counter: %w", err)
	}

	retryDelay, err := meter.Float64Histogram("council.retry.delay",
		metric.WithDescription("Backoff waited before a retry, in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating council.retry.delay histogram: %w", err)
	}

	return &Metrics{
		submissionTotal: submissionTotal,
		callActive:      callActive,
		callDuration:    callDuration,
		outcomeTotal:    outcomeTotal,
		retryTotal:      retryTotal,
		retryDelay:      retryDelay,
	}, nil
}

// RecordSubmission counts one submission fanned out to n providers.
func (m *Metrics) RecordSubmission(ctx context.Context, n int) {
	m.submissionTotal.Add(ctx, 1, metric.WithAttributes(attribute.Int("providers", n)))
}

// RecordCallStart increments the pending call count.
func (m *Metrics) RecordCallStart(ctx context.Context, provider string) {
	m.callActive.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrProvider, provider)))
}

// RecordOutcome decrements pending calls and records the resolved outcome.
func (m *Metrics) RecordOutcome(ctx context.Context, provider, status string, duration time.Duration) {
	p := attribute.String(AttrProvider, provider)
	m.callActive.Add(ctx, -1, metric.WithAttributes(p))
	m.outcomeTotal.Add(ctx, 1, metric.WithAttributes(p, attribute.String(AttrOutcome, status)))
	m.callDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(p))
}

// RecordRetry records one scheduled retry. It satisfies llm.RetryObserver.
func (m *Metrics) RecordRetry(ctx context.Context, provider string, status int, delay time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrProvider, provider),
		attribute.String("http.status", strconv.Itoa(status)),
	)
	m.retryTotal.Add(ctx, 1, attrs)
	m.retryDelay.Record(ctx, delay.Seconds(), attrs)
}

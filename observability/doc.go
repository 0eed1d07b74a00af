// Package observability provides OpenTelemetry tracing and metrics for the
// council: one span per provider call, per query and per HTTP attempt, and
// counters for attempts, retries and outcomes.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("council"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("council"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("council"))
//	metrics.RecordOutcome(ctx, "claude", observability.StatusSuccess, elapsed)
//
// Both are optional. Without Setup the global providers are no-ops.
package observability

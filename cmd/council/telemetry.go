package main

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/llmcouncil/bootstrap"
	"github.com/kbukum/llmcouncil/council"
	"github.com/kbukum/llmcouncil/observability"
)

// setupTelemetry starts the configured exporters, registers their flush on
// app shutdown and returns the instruments every component shares.
func setupTelemetry(ctx context.Context, app *bootstrap.App[*council.Config]) (trace.Tracer, *observability.Metrics, error) {
	cfg := app.Cfg
	shutdown, err := observability.Setup(ctx, cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	app.OnStop(shutdown)
	if err != nil {
		return nil, nil, err
	}
	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		return nil, nil, err
	}
	return observability.Tracer(serviceName), metrics, nil
}

package observability

import (
	"context"
	"errors"
)

// Config selects which signals the process exports.
type Config struct {
	Tracing    bool    `yaml:"tracing" mapstructure:"tracing"`
	Metrics    bool    `yaml:"metrics" mapstructure:"metrics"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// Setup initializes the enabled providers and returns a shutdown func that
// flushes them. With nothing enabled the global no-op providers stay in place.
func Setup(ctx context.Context, cfg Config, service, version, environment string) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdowns {
			errs = append(errs, fn(ctx))
		}
		return errors.Join(errs...)
	}

	if cfg.Tracing {
		tc := DefaultTracerConfig(service)
		tc.ServiceVersion, tc.Environment = version, environment
		if cfg.Endpoint != "" {
			tc.Endpoint = cfg.Endpoint
		}
		tc.Insecure = cfg.Insecure
		if cfg.SampleRate > 0 {
			tc.SampleRate = cfg.SampleRate
		}
		tp, err := InitTracer(ctx, tc)
		if err != nil {
			return shutdown, err
		}
		shutdowns = append(shutdowns, tp.Shutdown)
	}

	if cfg.Metrics {
		mc := DefaultMeterConfig(service)
		mc.ServiceVersion, mc.Environment = version, environment
		if cfg.Endpoint != "" {
			mc.Endpoint = cfg.Endpoint
		}
		mc.Insecure = cfg.Insecure
		mp, err := InitMeter(ctx, mc)
		if err != nil {
			return shutdown, err
		}
		shutdowns = append(shutdowns, mp.Shutdown)
	}

	return shutdown, nil
}

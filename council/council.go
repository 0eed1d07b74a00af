package council

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/llmcouncil/dispatch"
	apperrors "github.com/kbukum/llmcouncil/errors"
	"github.com/kbukum/llmcouncil/llm"
	"github.com/kbukum/llmcouncil/logger"
	"github.com/kbukum/llmcouncil/observability"
	"github.com/kbukum/llmcouncil/validation"
	"github.com/kbukum/llmcouncil/version"

	// Provider dialects register themselves.
	_ "github.com/kbukum/llmcouncil/llm/claude"
	_ "github.com/kbukum/llmcouncil/llm/deepseek"
	_ "github.com/kbukum/llmcouncil/llm/gemini"
	_ "github.com/kbukum/llmcouncil/llm/openai"
)

// Provider describes one enabled provider and its current model.
type Provider struct {
	Name     string
	Display  string
	Model    string
	Models   []llm.Model
	Endpoint string
}

// Council owns the enabled adapters, the model each one currently answers
// with, and the orchestrator that fans queries out to them.
type Council struct {
	orch     *dispatch.Orchestrator
	adapters map[string]*llm.Adapter
	order    []string
	cfg      *Config
	log      *logger.Logger

	mu     sync.RWMutex
	models map[string]string
}

// Option configures a Council.
type Option func(*options)

type options struct {
	log     *logger.Logger
	tracer  trace.Tracer
	metrics *observability.Metrics
}

// WithLogger sets the logger handed to adapters and the orchestrator.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithTracer records submission, call and attempt spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithMetrics records submissions, outcomes and retries.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New builds one adapter per enabled provider. Call cfg.ApplyDefaults and
// cfg.Validate first.
func New(cfg *Config, opts ...Option) (*Council, error) {
	o := &options{log: logger.Get("council")}
	for _, opt := range opts {
		opt(o)
	}

	c := &Council{
		adapters: make(map[string]*llm.Adapter),
		models:   make(map[string]string),
		cfg:      cfg,
		log:      o.log.WithComponent("council"),
	}

	names := make([]string, 0, len(cfg.Providers))
	for name, p := range cfg.Providers {
		if p.IsEnabled() {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	queriers := make([]dispatch.Querier, 0, len(names))
	for _, name := range names {
		a, err := newAdapter(name, cfg.Providers[name], cfg.Retry, o)
		if err != nil {
			return nil, fmt.Errorf("council: provider %s: %w", name, err)
		}
		c.adapters[name] = a
		c.models[name] = a.DefaultModel()
		c.order = append(c.order, name)
		queriers = append(queriers, a)
	}

	dopts := []dispatch.Option{dispatch.WithLogger(o.log.WithComponent("dispatch")), dispatch.WithTracer(o.tracer)}
	if o.metrics != nil {
		dopts = append(dopts, dispatch.WithMetrics(o.metrics))
	}
	orch, err := dispatch.New(queriers, dopts...)
	if err != nil {
		return nil, err
	}
	c.orch = orch
	return c, nil
}

func newAdapter(name string, p ProviderConfig, retry RetryConfig, o *options) (*llm.Adapter, error) {
	aopts := []llm.Option{llm.WithLogger(o.log.WithComponent("llm")), llm.WithTracer(o.tracer)}
	if o.metrics != nil {
		aopts = append(aopts, llm.WithRetryObserver(o.metrics))
	}
	return llm.New(llm.Config{
		Dialect:           name,
		BaseURL:           p.Endpoint,
		Model:             p.Model,
		Timeout:           p.Timeout,
		Headers:           map[string]string{"User-Agent": version.UserAgent()},
		Retry:             retry.Policy(),
		DefaultRetryAfter: retry.DefaultRetryAfter,
	}, aopts...)
}

// Orchestrator returns the dispatcher.
func (c *Council) Orchestrator() *dispatch.Orchestrator { return c.orch }

// Board returns the latest outcome of every provider.
func (c *Council) Board() *dispatch.Board { return c.orch.Board() }

// Providers lists the enabled providers with their current models.
func (c *Council) Providers() []Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Provider, 0, len(c.order))
	for _, name := range c.order {
		d := c.adapters[name].Dialect()
		out = append(out, Provider{
			Name:     name,
			Display:  d.DisplayName(),
			Model:    c.models[name],
			Models:   d.Models(),
			Endpoint: c.cfg.Providers[name].Endpoint,
		})
	}
	return out
}

// Display returns the human-readable name of provider, or provider itself
// if it is unknown.
func (c *Council) Display(provider string) string {
	if a, ok := c.adapters[provider]; ok {
		return a.Dialect().DisplayName()
	}
	return provider
}

// SetModel changes the model provider answers with from the next
// submission on. A submission already in flight keeps its model.
func (c *Council) SetModel(provider, model string) error {
	if err := c.check(provider, model); err != nil {
		return err
	}
	c.mu.Lock()
	c.models[provider] = model
	c.mu.Unlock()
	c.log.Debug("model changed", logger.Fields(logger.FieldProvider, provider, logger.FieldModel, model))
	return nil
}

func (c *Council) check(provider, model string) error {
	a, ok := c.adapters[provider]
	if !ok {
		return apperrors.NotFound("provider", provider).WithCause(dispatch.ErrUnknownProvider)
	}
	if !a.Supports(model) {
		return apperrors.InvalidInput("model", fmt.Sprintf("%s does not offer model %q", provider, model)).
			WithCause(dispatch.ErrUnsupportedModel)
	}
	return nil
}

// Selections returns one selection per enabled provider, in name order,
// with each provider's current model.
func (c *Council) Selections() []dispatch.Selection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sels := make([]dispatch.Selection, 0, len(c.order))
	for _, name := range c.order {
		sels = append(sels, dispatch.Selection{Provider: name, Model: c.models[name]})
	}
	return sels
}

// Ask applies the model overrides and dispatches query to every enabled
// provider. It returns as soon as the calls are started. A blank query or
// an invalid override is rejected before any model changes.
func (c *Council) Ask(ctx context.Context, query string, overrides map[string]string) (*dispatch.Submission, error) {
	if err := validation.Query(query, 0); err != nil {
		return nil, err
	}
	names := sortedKeys(overrides)
	for _, name := range names {
		if err := c.check(name, overrides[name]); err != nil {
			return nil, err
		}
	}
	for _, name := range names {
		if err := c.SetModel(name, overrides[name]); err != nil {
			return nil, err
		}
	}
	return c.orch.Dispatch(ctx, query, c.Selections())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package council

import (
	"fmt"
	"time"

	"github.com/kbukum/llmcouncil/config"
	"github.com/kbukum/llmcouncil/httpclient"
	"github.com/kbukum/llmcouncil/llm"
	"github.com/kbukum/llmcouncil/observability"
	"github.com/kbukum/llmcouncil/proxy"
	"github.com/kbukum/llmcouncil/resilience"
	"github.com/kbukum/llmcouncil/server"
	"github.com/kbukum/llmcouncil/validation"
	"github.com/kbukum/llmcouncil/version"
)

// DefaultEndpoint is the proxy every provider talks to unless configured.
const DefaultEndpoint = "http://localhost:3000"

// Config is the configuration of the council binary.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Providers     map[string]ProviderConfig `yaml:"providers" mapstructure:"providers" validate:"dive"`
	Retry         RetryConfig               `yaml:"retry" mapstructure:"retry"`
	Proxy         ProxyConfig               `yaml:"proxy" mapstructure:"proxy"`
	Observability observability.Config      `yaml:"observability" mapstructure:"observability"`
}

// ProviderConfig configures one provider adapter.
type ProviderConfig struct {
	// Endpoint is the proxy base URL.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,url"`
	// Model is the initially selected model.
	Model   string        `yaml:"model" mapstructure:"model"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// Enabled defaults to true.
	Enabled *bool `yaml:"enabled" mapstructure:"enabled"`
}

// IsEnabled reports whether the provider takes part in submissions.
func (p ProviderConfig) IsEnabled() bool { return p.Enabled == nil || *p.Enabled }

// RetryConfig configures the retry policy shared by every adapter.
type RetryConfig struct {
	// MaxAttempts counts every call, the first included.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts" validate:"gte=1,lte=10"`
	// BaseDelay is doubled per attempt when no Retry-After hint applies.
	BaseDelay time.Duration `yaml:"base_delay" mapstructure:"base_delay"`
	// MaxBackoff caps every delay. Zero means uncapped.
	MaxBackoff time.Duration `yaml:"max_backoff" mapstructure:"max_backoff"`
	// DefaultRetryAfter applies to retryable responses without a
	// Retry-After header. Negative disables it.
	DefaultRetryAfter time.Duration `yaml:"default_retry_after" mapstructure:"default_retry_after"`
}

// Policy returns the resilience policy for provider calls.
func (r RetryConfig) Policy() *resilience.RetryConfig {
	p := httpclient.DefaultRetryConfig()
	p.MaxAttempts = r.MaxAttempts
	p.Backoff = resilience.Backoff{Base: r.BaseDelay, Max: r.MaxBackoff}
	return p
}

// ProxyConfig configures the reference proxy served by `council serve`.
type ProxyConfig struct {
	Server   server.Config `yaml:"server" mapstructure:"server"`
	Upstream proxy.Config  `yaml:"upstream" mapstructure:"upstream"`
}

// ApplyDefaults fills unset fields and adds every registered provider that
// the file does not mention.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = version.Product
	}
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
	c.ServiceConfig.ApplyDefaults()

	if c.Providers == nil {
		c.Providers = make(map[string]ProviderConfig)
	}
	for _, name := range llm.Dialects() {
		p := c.Providers[name]
		if p.Endpoint == "" {
			p.Endpoint = DefaultEndpoint
		}
		c.Providers[name] = p
	}

	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = resilience.DefaultMaxAttempts
	}
	if c.Retry.BaseDelay == 0 {
		c.Retry.BaseDelay = resilience.DefaultBaseDelay
	}
	if c.Retry.DefaultRetryAfter == 0 {
		c.Retry.DefaultRetryAfter = httpclient.DefaultRetryAfter
	}

	c.Proxy.Server.ApplyDefaults()
	c.Proxy.Upstream.ApplyDefaults()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return err
	}

	enabled := 0
	for name, p := range c.Providers {
		d, err := llm.GetDialect(name)
		if err != nil {
			return fmt.Errorf("providers.%s: %w", name, err)
		}
		if p.Model != "" && !llm.HasModel(d, p.Model) {
			return fmt.Errorf("providers.%s.model: %q is not offered by %s", name, p.Model, d.DisplayName())
		}
		if p.Timeout < 0 {
			return fmt.Errorf("providers.%s.timeout must be non-negative (got: %s)", name, p.Timeout)
		}
		if p.IsEnabled() {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("providers: at least one provider must be enabled")
	}

	if c.Retry.BaseDelay < 0 || c.Retry.MaxBackoff < 0 {
		return fmt.Errorf("retry delays must be non-negative")
	}
	if err := c.Proxy.Server.Validate(); err != nil {
		return err
	}
	return c.Proxy.Upstream.Validate()
}

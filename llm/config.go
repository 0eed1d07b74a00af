package llm

import (
	"time"

	"github.com/kbukum/llmcouncil/httpclient"
	"github.com/kbukum/llmcouncil/resilience"
)

const defaultTimeout = 120 * time.Second

// Config holds configuration for creating an LLM adapter.
// It is provider-agnostic; the Dialect field selects the provider.
type Config struct {
	// Name identifies this adapter instance. Defaults to the dialect name.
	Name string `yaml:"name" json:"name"`

	// Dialect selects the provider (e.g. "openai", "claude").
	// Must match a dialect registered via RegisterDialect.
	Dialect string `yaml:"dialect" json:"dialect"`

	// BaseURL is the proxy base URL (e.g. "http://localhost:3000").
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Path overrides the dialect's proxy path.
	Path string `yaml:"path" json:"path"`

	// Model is the default model used when a query names none.
	Model string `yaml:"model" json:"model"`

	// Timeout for each HTTP call. Defaults to 120s.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// Credential authenticates towards the proxy, if it needs any.
	Credential *httpclient.Credential `yaml:"-" json:"-"`

	// Headers are additional HTTP headers sent with every request.
	Headers map[string]string `yaml:"headers" json:"headers"`

	// Retry configures retry behavior. Nil uses httpclient.DefaultRetryConfig.
	Retry *resilience.RetryConfig `yaml:"-" json:"-"`

	// DefaultRetryAfter is the hint for retryable responses without a
	// Retry-After header. Zero means 60s.
	DefaultRetryAfter time.Duration `yaml:"default_retry_after" json:"default_retry_after"`
}

// applyDefaults sets default values for unset config fields.
func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.Name == "" && c.Dialect != "" {
		c.Name = c.Dialect
	}
	if c.Retry == nil {
		c.Retry = httpclient.DefaultRetryConfig()
	}
}

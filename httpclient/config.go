package httpclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kbukum/llmcouncil/resilience"
)

const (
	defaultTimeout = 30 * time.Second
	// DefaultRetryAfter is the hint assumed when a retryable response has
	// no Retry-After header.
	DefaultRetryAfter = 60 * time.Second
)

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the per-call request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Credential is sent with every request unless the request sets its own.
	Credential *Credential `yaml:"-" mapstructure:"-"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// DefaultRetryAfter is the hint used for retryable responses without a
	// Retry-After header. Zero means 60s; negative disables the default so
	// the exponential policy applies.
	DefaultRetryAfter time.Duration `yaml:"default_retry_after" mapstructure:"default_retry_after"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`

	// Transport overrides the HTTP transport. Defaults to a clone of
	// http.DefaultTransport.
	Transport http.RoundTripper `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.DefaultRetryAfter == 0 {
		c.DefaultRetryAfter = DefaultRetryAfter
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.Retry != nil && c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("httpclient: retry max attempts must not be negative")
	}
	return nil
}

// DefaultRetryConfig returns the default retry config for provider calls:
// three calls in total, retrying only overload statuses.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}

package proxy

import (
	"fmt"
	"time"
)

// Default upstream endpoints.
const (
	DefaultOpenAIBaseURL    = "https://api.openai.com/v1/"
	DefaultDeepSeekBaseURL  = "https://api.deepseek.com/v1/"
	DefaultAnthropicBaseURL = "https://api.anthropic.com/"
	DefaultGeminiBaseURL    = "https://generativelanguage.googleapis.com"
)

// Config configures the upstream calls.
type Config struct {
	OpenAIBaseURL    string        `yaml:"openai_base_url" mapstructure:"openai_base_url" validate:"omitempty,url"`
	DeepSeekBaseURL  string        `yaml:"deepseek_base_url" mapstructure:"deepseek_base_url" validate:"omitempty,url"`
	AnthropicBaseURL string        `yaml:"anthropic_base_url" mapstructure:"anthropic_base_url" validate:"omitempty,url"`
	GeminiBaseURL    string        `yaml:"gemini_base_url" mapstructure:"gemini_base_url" validate:"omitempty,url"`
	Temperature      float64       `yaml:"temperature" mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens        int64         `yaml:"max_tokens" mapstructure:"max_tokens" validate:"gte=0"`
	Timeout          time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// MaxConcurrent caps in-flight upstream calls per provider; zero is unlimited.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent" validate:"gte=0"`
	// QueueWait is how long a call waits for a free slot before a 503.
	QueueWait time.Duration `yaml:"queue_wait" mapstructure:"queue_wait"`
	// RateLimit caps calls per second per provider; zero is unlimited.
	// Calls over the limit get a 429 with Retry-After.
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"`
	RateBurst int     `yaml:"rate_burst" mapstructure:"rate_burst" validate:"gte=0"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.OpenAIBaseURL == "" {
		c.OpenAIBaseURL = DefaultOpenAIBaseURL
	}
	if c.DeepSeekBaseURL == "" {
		c.DeepSeekBaseURL = DefaultDeepSeekBaseURL
	}
	if c.AnthropicBaseURL == "" {
		c.AnthropicBaseURL = DefaultAnthropicBaseURL
	}
	if c.GeminiBaseURL == "" {
		c.GeminiBaseURL = DefaultGeminiBaseURL
	}
	if c.Temperature == 0 {
		c.Temperature = 0.7
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 1024
	}
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("proxy.timeout must be non-negative (got: %s)", c.Timeout)
	}
	if c.MaxConcurrent < 0 || c.QueueWait < 0 {
		return fmt.Errorf("proxy.max_concurrent and proxy.queue_wait must be non-negative")
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return fmt.Errorf("proxy.rate_limit and proxy.rate_burst must be non-negative")
	}
	return nil
}

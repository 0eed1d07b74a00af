package proxy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeForwarder calls the Anthropic messages API.
type ClaudeForwarder struct {
	baseURL    string
	maxTokens  int64
	timeout    time.Duration
	httpClient *http.Client
}

// NewClaude forwards to Anthropic.
func NewClaude(cfg Config) *ClaudeForwarder {
	cfg.ApplyDefaults()
	return &ClaudeForwarder{
		baseURL:    cfg.AnthropicBaseURL,
		maxTokens:  cfg.MaxTokens,
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
	}
}

func (f *ClaudeForwarder) Provider() string { return "claude" }
func (f *ClaudeForwarder) Display() string  { return "Claude" }
func (f *ClaudeForwarder) EnvVar() string   { return "ANTHROPIC_API_KEY" }

// Forward sends one user message. The SDK sets the anthropic-version header.
func (f *ClaudeForwarder) Forward(ctx context.Context, apiKey, query, model string) (*Upstream, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(f.baseURL),
		option.WithHTTPClient(f.httpClient),
		option.WithRequestTimeout(f.timeout),
		option.WithMaxRetries(0),
	)

	var t tape
	_, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: f.maxTokens,
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(query))},
	}, option.WithMiddleware(t.record))
	if t.up != nil {
		return t.up, nil
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return nil, fmt.Errorf("Claude API request failed: HTTP %d", apiErr.StatusCode)
	}
	return nil, fmt.Errorf("Claude API request failed: %w", err)
}

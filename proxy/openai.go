package proxy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIForwarder calls a chat completions API. DeepSeek serves the same
// API, so one type covers both.
type OpenAIForwarder struct {
	provider    string
	display     string
	envVar      string
	baseURL     string
	temperature float64
	timeout     time.Duration
	httpClient  *http.Client
}

// NewOpenAI forwards to OpenAI.
func NewOpenAI(cfg Config) *OpenAIForwarder {
	cfg.ApplyDefaults()
	return &OpenAIForwarder{
		provider: "openai", display: "OpenAI", envVar: "OPENAI_API_KEY",
		baseURL: cfg.OpenAIBaseURL, temperature: cfg.Temperature, timeout: cfg.Timeout,
		httpClient: &http.Client{},
	}
}

// NewDeepSeek forwards to DeepSeek.
func NewDeepSeek(cfg Config) *OpenAIForwarder {
	cfg.ApplyDefaults()
	return &OpenAIForwarder{
		provider: "deepseek", display: "DeepSeek", envVar: "DEEPSEEK_API_KEY",
		baseURL: cfg.DeepSeekBaseURL, temperature: cfg.Temperature, timeout: cfg.Timeout,
		httpClient: &http.Client{},
	}
}

func (f *OpenAIForwarder) Provider() string { return f.provider }
func (f *OpenAIForwarder) Display() string  { return f.display }
func (f *OpenAIForwarder) EnvVar() string   { return f.envVar }

// Forward sends one user message with the configured temperature.
func (f *OpenAIForwarder) Forward(ctx context.Context, apiKey, query, model string) (*Upstream, error) {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(f.baseURL),
		option.WithHTTPClient(f.httpClient),
		option.WithRequestTimeout(f.timeout),
		option.WithMaxRetries(0),
	)

	var t tape
	_, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(query)},
		Temperature: openai.Float(f.temperature),
	}, option.WithMiddleware(t.record))
	if t.up != nil {
		return t.up, nil
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return nil, fmt.Errorf("%s API request failed: HTTP %d", f.display, apiErr.StatusCode)
	}
	return nil, fmt.Errorf("%s API request failed: %w", f.display, err)
}

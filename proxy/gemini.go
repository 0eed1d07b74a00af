package proxy

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kbukum/llmcouncil/httpclient"
	"github.com/kbukum/llmcouncil/llm/gemini"
)

// GeminiForwarder calls generateContent with the key as a query parameter.
type GeminiForwarder struct {
	client      *httpclient.Client
	temperature float64
}

// NewGemini forwards to Google Gemini.
func NewGemini(cfg Config) (*GeminiForwarder, error) {
	cfg.ApplyDefaults()
	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.Timeout,
		// The proxy relays headers as received; no synthesized hint.
		DefaultRetryAfter: -1,
	})
	if err != nil {
		return nil, fmt.Errorf("proxy: gemini client: %w", err)
	}
	return &GeminiForwarder{client: client, temperature: cfg.Temperature}, nil
}

func (f *GeminiForwarder) Provider() string { return gemini.ProviderName }
func (f *GeminiForwarder) Display() string  { return "Gemini" }
func (f *GeminiForwarder) EnvVar() string   { return "GOOGLE_API_KEY" }

// Forward posts a single-turn generateContent request.
func (f *GeminiForwarder) Forward(ctx context.Context, apiKey, query, model string) (*Upstream, error) {
	resp, err := f.client.Do(ctx, httpclient.Request{
		Method:     http.MethodPost,
		Path:       gemini.GenerateContentPath(model),
		Body:       gemini.NewRequest(query, f.temperature),
		Credential: httpclient.QueryKey("key", apiKey),
	})
	if resp != nil {
		return &Upstream{Status: resp.StatusCode, Body: resp.Body, RetryAfter: resp.RetryAfter()}, nil
	}
	return nil, fmt.Errorf("Gemini API request failed: %w", err)
}

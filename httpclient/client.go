package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/llmcouncil/resilience"
)

// Client is a configurable HTTP client with credentials, status
// classification and retry.
type Client struct {
	httpClient *http.Client
	config     Config
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithTracer records one span per call attempt.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// New creates a new HTTP client with the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}

	c := &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		tracer: noop.NewTracerProvider().Tracer("httpclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do executes an HTTP request and returns the complete response. With a
// retry policy configured, retryable statuses are retried and the last
// classified error is returned once attempts run out.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("encode body: %v", err))
	}

	if c.config.Retry == nil {
		return c.executeRequest(ctx, req, body, contentType, 1)
	}

	cfg := *c.config.Retry
	if cfg.RetryIf == nil {
		cfg.RetryIf = IsRetryable
	}
	attempt := 0
	return resilience.Retry(ctx, cfg, func() (*Response, error) {
		attempt++
		return c.executeRequest(ctx, req, body, contentType, attempt)
	})
}

// executeRequest builds and sends one HTTP request.
func (c *Client) executeRequest(ctx context.Context, req Request, body []byte, contentType string, attempt int) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "http.attempt", trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.Path),
			attribute.Int("http.attempt", attempt),
		))
	defer span.End()

	httpReq, err := c.buildRequest(ctx, req, body, contentType)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		if ctx.Err() != nil {
			return nil, NewCanceledError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	result := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		Attempts:   attempt,
	}

	if classErr := ClassifyStatusCode(resp.StatusCode, data); classErr != nil {
		if classErr.Retryable {
			classErr.RetryAfter, classErr.HasRetryAfter = ParseRetryAfter(resp.Header, c.config.DefaultRetryAfter)
		}
		span.SetStatus(codes.Error, classErr.Code.String())
		return result, classErr
	}

	return result, nil
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request, body []byte, contentType string) (*http.Request, error) {
	// Resolve URL
	url := req.Path
	if c.config.BaseURL != "" && !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		url = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, reader)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	// Apply query parameters
	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	// Apply default headers
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}

	// Apply request-specific headers (override defaults)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	// Set content-type if body present and not already set
	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	cred := c.config.Credential
	if req.Credential != nil {
		cred = req.Credential
	}
	cred.apply(httpReq)

	return httpReq, nil
}

// encodeBody converts a body value into replayable bytes and a content type.
func encodeBody(body any) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		data, err := io.ReadAll(v)
		return data, "", err
	case []byte:
		return v, "", nil
	case string:
		return []byte(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return data, "application/json", nil
	}
}

// Package httpclient provides the HTTP client every provider call goes
// through. It classifies responses, reads Retry-After hints and, when a
// retry policy is configured, drives requests through resilience.Retry.
//
// Only 429, 408 and 503 responses are retryable. Every other non-2xx status
// and every transport failure is terminal.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "http://localhost:3000",
//	    Timeout: 120 * time.Second,
//	    Retry:   httpclient.DefaultRetryConfig(),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/api/claude",
//	    Body:   map[string]string{"query": q, "model": m},
//	})
package httpclient

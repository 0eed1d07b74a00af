package proxy

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// Upstream is the raw response of one upstream call.
type Upstream struct {
	Status     int
	Body       []byte
	RetryAfter string
}

// OK reports a 2xx status.
func (u *Upstream) OK() bool { return u.Status >= 200 && u.Status < 300 }

// Forwarder sends one query to a provider's API.
type Forwarder interface {
	// Provider is the route id, e.g. "openai".
	Provider() string
	// Display names the provider in error messages.
	Display() string
	// EnvVar names the environment variable holding the API key.
	EnvVar() string
	// Forward returns the upstream response whatever its status. An error
	// means no response was received.
	Forward(ctx context.Context, apiKey, query, model string) (*Upstream, error)
}

// tape records the response an SDK call received before the SDK decodes
// it, so the proxy can relay the body verbatim. Its record method fits the
// option.WithMiddleware signature of both SDKs.
type tape struct {
	up *Upstream
}

func (t *tape) record(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	resp, err := next(req)
	if err != nil || resp == nil {
		return resp, err
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}
	t.up = &Upstream{Status: resp.StatusCode, Body: body, RetryAfter: resp.Header.Get("Retry-After")}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

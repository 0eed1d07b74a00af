package httpclient

import "net/http"

// Request is one outbound call. Path is joined to Config.BaseURL unless it
// is already absolute.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Query   map[string]string

	// Body may be an io.Reader, []byte, string or any JSON-encodable value.
	// It is encoded once so every attempt sends the same bytes.
	Body any

	// Credential replaces Config.Credential for this call.
	Credential *Credential
}

// Response is the last response received for a Request.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// Attempts counts the calls made, the final one included.
	Attempts int
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// RetryAfter returns the raw Retry-After header, or "".
func (r *Response) RetryAfter() string {
	return r.Header.Get("Retry-After")
}

package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeConnection indicates a transport failure (refused, DNS, reset).
	ErrCodeConnection ErrorCode = iota
	// ErrCodeCanceled indicates the caller's context ended the request.
	ErrCodeCanceled
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeTimeout indicates the server reported a request timeout (408).
	ErrCodeTimeout
	// ErrCodeUnavailable indicates the server is temporarily unavailable (503).
	ErrCodeUnavailable
	// ErrCodeClient indicates any other 4xx response.
	ErrCodeClient
	// ErrCodeServer indicates any other 5xx response.
	ErrCodeServer
	// ErrCodeValidation indicates the request could not be built.
	ErrCodeValidation
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeConnection:
		return "connection"
	case ErrCodeCanceled:
		return "canceled"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeUnavailable:
		return "unavailable"
	case ErrCodeClient:
		return "client"
	case ErrCodeServer:
		return "server"
	case ErrCodeValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is a structured HTTP client error with classification.
type Error struct {
	// StatusCode is the HTTP status code (0 for connection-level errors).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message is the raw response body text, or the transport error text.
	Message string
	// Retryable indicates whether the operation can be retried.
	Retryable bool
	// Body is the original response body (may be nil).
	Body []byte
	// RetryAfter is the server's retry hint in seconds, valid when HasRetryAfter.
	RetryAfter    int
	HasRetryAfter bool
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// RetryAfterHint implements resilience.Hinted.
func (e *Error) RetryAfterHint() (int, bool) {
	return e.RetryAfter, e.HasRetryAfter
}

// NewConnectionError creates a terminal transport error.
func NewConnectionError(err error) *Error {
	return &Error{
		Code:      ErrCodeConnection,
		Message:   err.Error(),
		Retryable: false,
		Err:       err,
	}
}

// NewCanceledError creates an error for a request ended by its context.
func NewCanceledError(err error) *Error {
	return &Error{
		Code:      ErrCodeCanceled,
		Message:   err.Error(),
		Retryable: false,
		Err:       err,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(msg string) *Error {
	return &Error{
		Code:      ErrCodeValidation,
		Message:   msg,
		Retryable: false,
	}
}

// NewStatusError creates an error for a non-2xx response. The message is the
// body text unchanged.
func NewStatusError(statusCode int, body []byte) *Error {
	e := &Error{
		StatusCode: statusCode,
		Message:    string(body),
		Body:       body,
	}
	switch {
	case statusCode == http.StatusTooManyRequests:
		e.Code, e.Retryable = ErrCodeRateLimit, true
	case statusCode == http.StatusRequestTimeout:
		e.Code, e.Retryable = ErrCodeTimeout, true
	case statusCode == http.StatusServiceUnavailable:
		e.Code, e.Retryable = ErrCodeUnavailable, true
	case statusCode >= 500:
		e.Code = ErrCodeServer
	default:
		e.Code = ErrCodeClient
	}
	return e
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	return NewStatusError(statusCode, body)
}

// IsRetryableStatus reports whether a status signals transient overload.
func IsRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests, http.StatusRequestTimeout, http.StatusServiceUnavailable:
		return true
	}
	return false
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsRateLimit checks if an error is a rate-limit error.
func IsRateLimit(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeRateLimit
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Detail is an optional explanation sent alongside Message.
	Detail string `json:"detail,omitempty"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// RetryAfter is the server's retry hint in seconds (0 means none).
	RetryAfter int `json:"-"`
	// Details contains additional context for logging.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single context key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithRetryAfter records the server's retry hint and returns the receiver.
func (e *AppError) WithRetryAfter(seconds int) *AppError {
	e.RetryAfter = seconds
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// MissingParameters is returned when a proxy request lacks query or model.
func MissingParameters() *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: "Missing required parameters",
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// NotConfigured is returned when the credential held in envVar is absent.
func NotConfigured(envVar string) *AppError {
	return &AppError{
		Code: ErrCodeNotConfigured, Message: "API key not configured",
		Detail:     fmt.Sprintf("%s environment variable is not set", envVar),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details:    map[string]any{"env": envVar},
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// NotFound creates a new AppError for an unknown resource.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("Unknown %s %q", resource, id),
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// RateLimited creates a new AppError for too many requests.
func RateLimited(message string) *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: message,
		HTTPStatus: http.StatusTooManyRequests, Retryable: true,
	}
}

// ConnectionFailed creates a new AppError for an unreachable upstream.
func ConnectionFailed(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("Unable to reach %s", service),
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"service": service}, Cause: cause,
	}
}

// UnexpectedResponse creates a new AppError for a response of the wrong shape.
func UnexpectedResponse(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeUnexpectedResponse, Message: fmt.Sprintf("Unexpected response from %s", service),
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"service": service}, Cause: cause,
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	msg := "Internal server error"
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Code: ErrCodeInternal, Message: msg,
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// FromStatus maps an upstream HTTP status and message to an AppError that
// preserves the status, so retryable overload codes survive the proxy hop.
func FromStatus(status int, message string) *AppError {
	code := ErrCodeExternalService
	switch status {
	case http.StatusTooManyRequests:
		code = ErrCodeRateLimited
	case http.StatusRequestTimeout:
		code = ErrCodeTimeout
	case http.StatusServiceUnavailable:
		code = ErrCodeServiceUnavailable
	}
	if status < 400 {
		status = http.StatusBadGateway
	}
	return New(code, message, status)
}

package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Transient errors (retryable)
const (
	// ErrCodeRateLimited indicates the caller is rate limited (HTTP 429).
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeTimeout indicates the request timed out (HTTP 408).
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeServiceUnavailable indicates the service is temporarily unavailable (HTTP 503).
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// Request errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeNotFound indicates the requested resource (e.g. a provider) does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Upstream and internal errors
const (
	// ErrCodeNotConfigured indicates a required credential or setting is absent.
	ErrCodeNotConfigured ErrorCode = "NOT_CONFIGURED"
	// ErrCodeConnectionFailed indicates the upstream could not be reached.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeUnexpectedResponse indicates a response did not have the expected shape.
	ErrCodeUnexpectedResponse ErrorCode = "UNEXPECTED_RESPONSE"
	// ErrCodeExternalService indicates a terminal error returned by an upstream provider.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Only the three overload codes are retryable. Connection failures are
// terminal: a transport error never carries a retryable status.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeRateLimited:        true,
	ErrCodeTimeout:            true,
	ErrCodeServiceUnavailable: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

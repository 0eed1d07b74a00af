// Package resilience provides the retry and backoff policy used for every
// provider call.
//
// ComputeDelay is the pure backoff policy: a server-supplied hint wins,
// otherwise the delay doubles from a one second base with every attempt.
// Retry drives a single operation through that policy:
//
//	body, err := resilience.Retry(ctx, resilience.RetryConfig{
//	    MaxAttempts: 3,
//	    RetryIf:     httpclient.IsRetryable,
//	}, func() ([]byte, error) {
//	    return call(ctx)
//	})
//
// The proxy side uses Bulkhead to cap concurrent upstream calls and
// RateLimiter to cap their rate. Both reject instead of queuing for long,
// and the rejection carries a Retry-After hint for the caller's Retry.
package resilience

package httpclient

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ParseRetryAfter reads an integer-seconds Retry-After header value.
//
// An absent header yields the fallback when it is positive. A present value
// that is not a positive integer yields no hint, leaving the exponential
// policy in charge.
func ParseRetryAfter(h http.Header, fallback time.Duration) (int, bool) {
	values, present := h[http.CanonicalHeaderKey("Retry-After")]
	if !present || len(values) == 0 {
		if fallback > 0 {
			return int(fallback / time.Second), true
		}
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(values[0]))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

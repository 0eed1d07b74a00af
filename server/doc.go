// Package server runs the council's HTTP surface: a Gin engine served
// through h2c so clients can speak HTTP/2 without TLS.
//
// ApplyMiddleware installs, outermost first:
//
//   - Recovery: panics become a 500 JSON error
//   - RequestID: X-Request-Id generation and propagation into the context
//   - Tracing: one server span per request, continued from traceparent
//   - CORS: permissive by default, OPTIONS preflight answered with 204
//   - BodySizeLimit: caps request bodies
//   - RequestLogger: one log line per request, health probes skipped
//
// Endpoints in server/endpoint serve /health, /alive and /version.
package server

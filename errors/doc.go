// Package errors provides the application error type used at the council's
// service boundaries: the proxy HTTP handlers and the dispatch orchestrator's
// failure outcomes.
package errors

// Package logger provides structured logging for the council using zerolog.
//
// Loggers carry a service name, may be scoped to a component, and pick up
// request, submission and trace identifiers from a context.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.Get("dispatch")
//	log.Info("attempt failed", logger.Fields(logger.FieldProvider, "openai", logger.FieldAttempt, 2))
package logger

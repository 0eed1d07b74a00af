package llm

import "errors"

// Sentinel errors.
var (
	ErrNoDialect       = errors.New("llm: dialect is required")
	ErrUnknownDialect  = errors.New("llm: unknown dialect")
	ErrUnknownModel    = errors.New("llm: unknown model")
	ErrUnexpectedShape = errors.New("llm: unexpected response shape")
)

package llm

// Model is one selectable model of a provider.
type Model struct {
	// ID is the identifier sent upstream (e.g. "gpt-4o-mini").
	ID string `json:"id" yaml:"id"`
	// Label is the human-readable name shown in selectors.
	Label string `json:"label" yaml:"label"`
}

// ProxyRequest is the JSON payload every adapter posts to its proxy endpoint.
type ProxyRequest struct {
	Query string `json:"query" binding:"required" validate:"required"`
	Model string `json:"model" binding:"required" validate:"required"`
}

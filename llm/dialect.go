package llm

import (
	"fmt"
	"slices"
	"sort"
	"sync"
)

// Dialect describes one LLM provider as seen through its proxy endpoint.
//
// Dialect implementations live in subpackages (llm/openai, llm/gemini,
// llm/claude, llm/deepseek) and register themselves from init().
type Dialect interface {
	// Name returns the provider id (e.g. "openai"). It keys outcome cells.
	Name() string

	// DisplayName returns the provider's human-readable name.
	DisplayName() string

	// Models returns the provider's fixed model set.
	Models() []Model

	// DefaultModel returns the model used when a selection names none.
	DefaultModel() string

	// ChatPath returns the proxy endpoint path (e.g. "/api/openai").
	ChatPath() string

	// BuildRequest returns the proxy request body for query and model.
	BuildRequest(query, model string) (any, error)

	// ParseResponse extracts the single answer string from the provider's
	// JSON body. A missing field path must return an error wrapping
	// ErrUnexpectedShape.
	ParseResponse(body []byte) (string, error)
}

// Descriptor carries the static facts of a provider and implements every
// Dialect method except ParseResponse. Dialects embed it.
type Descriptor struct {
	ID      string
	Display string
	Choices []Model
	Default string
	Path    string
}

// Name returns the provider id.
func (d Descriptor) Name() string { return d.ID }

// DisplayName returns the provider's human-readable name.
func (d Descriptor) DisplayName() string { return d.Display }

// Models returns a copy of the provider's model set.
func (d Descriptor) Models() []Model { return slices.Clone(d.Choices) }

// DefaultModel returns the default model, falling back to the first declared model.
func (d Descriptor) DefaultModel() string {
	if d.Default != "" {
		return d.Default
	}
	if len(d.Choices) > 0 {
		return d.Choices[0].ID
	}
	return ""
}

// ChatPath returns the proxy path, "/api/<id>" unless overridden.
func (d Descriptor) ChatPath() string {
	if d.Path != "" {
		return d.Path
	}
	return "/api/" + d.ID
}

// BuildRequest returns the {query, model} proxy payload.
func (d Descriptor) BuildRequest(query, model string) (any, error) {
	return ProxyRequest{Query: query, Model: model}, nil
}

// HasModel reports whether model belongs to the dialect's model set.
func HasModel(d Dialect, model string) bool {
	return slices.ContainsFunc(d.Models(), func(m Model) bool { return m.ID == model })
}

// --- Dialect Registry ---

var (
	dialectsMu sync.RWMutex
	dialects   = map[string]Dialect{}
)

// RegisterDialect adds a dialect to the global registry.
// Typically called from init() in dialect packages:
//
//	func init() {
//	    llm.RegisterDialect(ProviderName, Dialect{})
//	}
func RegisterDialect(name string, d Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[name] = d
}

// GetDialect retrieves a dialect by name from the global registry.
func GetDialect(name string) (Dialect, error) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (forgot to import the dialect package?)", ErrUnknownDialect, name)
	}
	return d, nil
}

// Dialects returns the sorted names of all registered dialects.
func Dialects() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

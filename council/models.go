package council

import (
	"fmt"
	"strings"
)

// ParseModelFlags parses repeated provider=model values into overrides.
// Naming a provider twice is an error.
func ParseModelFlags(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, v := range values {
		provider, model, ok := strings.Cut(v, "=")
		provider, model = strings.TrimSpace(provider), strings.TrimSpace(model)
		if !ok || provider == "" || model == "" {
			return nil, fmt.Errorf("invalid model selection %q (want provider=model)", v)
		}
		if _, dup := out[provider]; dup {
			return nil, fmt.Errorf("model for %s given more than once", provider)
		}
		out[provider] = model
	}
	return out, nil
}

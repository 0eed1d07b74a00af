package llm

import (
	"encoding/json"
	"fmt"
)

// Decode unmarshals a provider body into v, reporting malformed JSON as
// ErrUnexpectedShape.
func Decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return nil
}

// MissingField returns an ErrUnexpectedShape error naming the absent path.
func MissingField(path string) error {
	return fmt.Errorf("%w: missing %s", ErrUnexpectedShape, path)
}

// Package gemini registers the Google Gemini dialect and defines the
// generateContent wire types shared with the proxy.
//
// Proxy payload: {"query": "...", "model": "gemini-2.0-flash"}. The proxy
// posts a GenerateContentRequest to /v1beta/models/{model}:generateContent
// and returns the upstream body, whose answer lives at
// candidates[0].content.parts[0].text.
package gemini

import (
	"github.com/kbukum/llmcouncil/llm"
)

// ProviderName is the registered name for the Gemini dialect.
const ProviderName = "gemini"

// Part is one piece of content.
type Part struct {
	Text *string `json:"text,omitempty"`
}

// Content is a list of parts.
type Content struct {
	Parts []Part `json:"parts"`
}

// GenerationConfig holds sampling parameters.
type GenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

// GenerateContentRequest is the upstream request body.
type GenerateContentRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

// GenerateContentResponse is the subset of the upstream body the council reads.
type GenerateContentResponse struct {
	Candidates []struct {
		Content Content `json:"content"`
	} `json:"candidates"`
}

// NewRequest builds a single-turn request for text.
func NewRequest(text string, temperature float64) GenerateContentRequest {
	return GenerateContentRequest{
		Contents:         []Content{{Parts: []Part{{Text: &text}}}},
		GenerationConfig: GenerationConfig{Temperature: temperature},
	}
}

// GenerateContentPath returns the API path for model.
func GenerateContentPath(model string) string {
	return "/v1beta/models/" + model + ":generateContent"
}

// Dialect implements llm.Dialect for Gemini.
type Dialect struct {
	llm.Descriptor
}

// New returns the Gemini dialect.
func New() Dialect {
	return Dialect{Descriptor: llm.Descriptor{
		ID:      ProviderName,
		Display: "Google Gemini",
		Choices: []llm.Model{
			{ID: "gemini-2.0-flash", Label: "Gemini 2.0 Flash"},
			{ID: "gemini-2.0-flash-lite", Label: "Gemini 2.0 Flash Lite"},
		},
		Default: "gemini-2.0-flash",
	}}
}

// ParseResponse extracts candidates[0].content.parts[0].text.
func (Dialect) ParseResponse(body []byte) (string, error) {
	var resp GenerateContentResponse
	if err := llm.Decode(body, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 ||
		resp.Candidates[0].Content.Parts[0].Text == nil {
		return "", llm.MissingField("candidates[0].content.parts[0].text")
	}
	return *resp.Candidates[0].Content.Parts[0].Text, nil
}

func init() {
	llm.RegisterDialect(ProviderName, New())
}

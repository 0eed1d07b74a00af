// Package claude registers the Anthropic Claude dialect.
//
// Proxy payload: {"query": "...", "model": "claude-3-5-haiku-latest"}. The
// proxy calls the Messages API with max_tokens 1024 and returns the message
// body, whose answer lives at content[0].text.
package claude

import (
	"github.com/kbukum/llmcouncil/llm"
)

// ProviderName is the registered name for the Claude dialect.
const ProviderName = "claude"

type message struct {
	Content []struct {
		Text *string `json:"text"`
	} `json:"content"`
}

// Dialect implements llm.Dialect for Anthropic Claude.
type Dialect struct {
	llm.Descriptor
}

// New returns the Claude dialect.
func New() Dialect {
	return Dialect{Descriptor: llm.Descriptor{
		ID:      ProviderName,
		Display: "Anthropic Claude",
		Choices: []llm.Model{{ID: "claude-3-5-haiku-latest", Label: "Claude 3.5 Haiku"}},
		Default: "claude-3-5-haiku-latest",
	}}
}

// ParseResponse extracts content[0].text.
func (Dialect) ParseResponse(body []byte) (string, error) {
	var msg message
	if err := llm.Decode(body, &msg); err != nil {
		return "", err
	}
	if len(msg.Content) == 0 || msg.Content[0].Text == nil {
		return "", llm.MissingField("content[0].text")
	}
	return *msg.Content[0].Text, nil
}

func init() {
	llm.RegisterDialect(ProviderName, New())
}

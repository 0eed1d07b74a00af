// Package deepseek registers the DeepSeek dialect.
//
// DeepSeek exposes an OpenAI-compatible API, so the proxy reuses the chat
// completion request against https://api.deepseek.com/v1 and the answer
// lives at choices[0].message.content.
package deepseek

import (
	"github.com/kbukum/llmcouncil/llm"
	"github.com/kbukum/llmcouncil/llm/openai"
)

// ProviderName is the registered name for the DeepSeek dialect.
const ProviderName = "deepseek"

// Dialect implements llm.Dialect for DeepSeek.
type Dialect struct {
	llm.Descriptor
}

// New returns the DeepSeek dialect.
func New() Dialect {
	return Dialect{Descriptor: llm.Descriptor{
		ID:      ProviderName,
		Display: "DeepSeek",
		Choices: []llm.Model{
			{ID: "deepseek-chat", Label: "DeepSeek Chat"},
			{ID: "deepseek-reasoner", Label: "DeepSeek Reasoner"},
		},
		Default: "deepseek-chat",
	}}
}

// ParseResponse extracts the answer from an OpenAI-compatible body.
func (Dialect) ParseResponse(body []byte) (string, error) {
	return openai.ParseChatCompletion(body)
}

func init() {
	llm.RegisterDialect(ProviderName, New())
}

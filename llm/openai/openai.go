// Package openai registers the OpenAI dialect.
//
// Proxy payload: {"query": "...", "model": "gpt-4o-mini"}. The proxy sends
// a chat completion with one user message and returns the upstream body,
// whose answer lives at choices[0].message.content.
package openai

import (
	"github.com/kbukum/llmcouncil/llm"
)

// ProviderName is the registered name for the OpenAI dialect.
const ProviderName = "openai"

// ChatCompletion is the subset of a chat completion body the council reads.
// DeepSeek serves the same shape.
type ChatCompletion struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ParseChatCompletion extracts choices[0].message.content.
func ParseChatCompletion(body []byte) (string, error) {
	var resp ChatCompletion
	if err := llm.Decode(body, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == nil {
		return "", llm.MissingField("choices[0].message.content")
	}
	return *resp.Choices[0].Message.Content, nil
}

// Dialect implements llm.Dialect for OpenAI.
type Dialect struct {
	llm.Descriptor
}

// New returns the OpenAI dialect.
func New() Dialect {
	return Dialect{Descriptor: llm.Descriptor{
		ID:      ProviderName,
		Display: "OpenAI GPT-4",
		Choices: []llm.Model{{ID: "gpt-4o-mini", Label: "GPT-4o Mini"}},
		Default: "gpt-4o-mini",
	}}
}

// ParseResponse extracts the answer from a chat completion body.
func (Dialect) ParseResponse(body []byte) (string, error) {
	return ParseChatCompletion(body)
}

func init() {
	llm.RegisterDialect(ProviderName, New())
}

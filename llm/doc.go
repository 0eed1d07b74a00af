// Package llm provides the provider adapter the council uses to query one
// LLM through its proxy endpoint.
//
// The adapter is provider-agnostic. A [Dialect] describes one provider: its
// id, display name, fixed model set, proxy path and the field path holding
// the answer text in the provider's JSON body. Dialect packages register
// themselves on import, similar to database/sql drivers:
//
//	import (
//	    "github.com/kbukum/llmcouncil/llm"
//	    _ "github.com/kbukum/llmcouncil/llm/claude"
//	)
//
//	adapter, err := llm.New(llm.Config{
//	    Dialect: "claude",
//	    BaseURL: "http://localhost:3000",
//	})
//
//	text, err := adapter.Query(ctx, "What is 2+2?", "claude-3-5-haiku-latest")
//
// Every adapter posts {"query": ..., "model": ...} and retries 429, 408 and
// 503 responses through [httpclient.Client]. A body without the expected
// field path fails with [ErrUnexpectedShape] and is never retried.
package llm

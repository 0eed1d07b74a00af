// Package proxy serves POST /api/:provider for the council: it reads
// {query, model}, looks up the provider's API key in the environment and
// forwards one chat request upstream.
//
// OpenAI and DeepSeek go through openai-go, Claude through
// anthropic-sdk-go and Gemini through the council's own httpclient with a
// ?key= query credential. SDK retries are off so the council's retry
// policy alone decides when to call again; upstream failures keep their
// status and Retry-After header for that reason.
//
// Each provider has its own concurrency cap (503 when full) and rate limit
// (429 when exceeded). Both answers carry Retry-After.
package proxy

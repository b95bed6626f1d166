// Package llm provides text-completion clients for the summary generator:
// an OpenAI-compatible client and an Anthropic client behind one interface,
// with shared error classification.
package llm

import "context"

// systemMessage is the fixed system prompt for every completion request.
const systemMessage = "You are a clinical assistant generating structured patient summaries."

// CompletionClient is the pluggable text-completion backend. Complete sends
// the prompt to the given model and returns the generated text. When the
// model rejects the sampling temperature, implementations retry exactly
// once without it before reporting failure; any other error is returned
// classified (see ClassifyError).
type CompletionClient interface {
	Complete(ctx context.Context, prompt, model string, temperature float64) (string, error)

	// Provider returns the backend identifier ("openai" or "anthropic").
	Provider() string
}

// Compile-time interface checks.
var (
	_ CompletionClient = (*Client)(nil)
	_ CompletionClient = (*AnthropicClient)(nil)
	_ CompletionClient = (*MockCompletionClient)(nil)
)

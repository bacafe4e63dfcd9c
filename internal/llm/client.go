// Package llm wraps the text-understanding backend behind a one-method
// client so the analysis and response adapters stay backend-agnostic.
package llm

import "context"

// Client sends a prompt to the text-understanding backend and returns the
// raw generated text. All transport, auth and API failures come back as a
// plain error; callers collapse them into their own failure signal.
type Client interface {
	Complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error)
}

package ai

import (
	"context"
)

// CompletionRequest is a single text-completion call.
type CompletionRequest struct {
	Prompt    string
	MaxTokens int
}

// CompletionResponse is the first choice returned by the provider.
type CompletionResponse struct {
	Text  string
	Model string
	Usage TokenUsage
}

// TokenUsage as reported by the provider, zero when absent.
type TokenUsage struct {
	InputTokens  int
	OutputTokens int
}

// Provider is the interface for completion backends.
// Implementations must return an *Error for every failure.
type Provider interface {
	ID() string
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

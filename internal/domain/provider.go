package domain

import "context"

// Prompt is one chat-completion request to the model provider.
type Prompt struct {
	System      string
	User        string
	Temperature float64
}

// ModelProvider sends a prompt to a hosted language model and returns the reply text.
// Implementations report failures as *DomainError with CodeRateLimited,
// CodePaymentRequired, CodeProviderError or CodeMalformedResponse.
type ModelProvider interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

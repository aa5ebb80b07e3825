// Package llm holds the model-provider contract and its
// implementations. One required provider and one optional provider
// each receive the same rendered evaluation prompt and return a
// structured claim evaluation; everything downstream of this package
// treats them interchangeably.
package llm

import (
	"context"

	"claimlens/internal/model"
)

// Provider is one LLM backend able to evaluate a post
type Provider interface {
	// Name returns the provider name
	Name() string

	// Evaluate submits the rendered prompt and returns the provider's
	// structured claim evaluation
	Evaluate(ctx context.Context, req EvaluateRequest) (*model.ProviderResult, error)
}

// EvaluateRequest is the input for one provider call
type EvaluateRequest struct {
	// Prompt is the rendered evaluation prompt
	Prompt string

	// Model overrides the provider's configured model when non-empty
	Model string

	// MaxTokens limits the response length (0 = provider default)
	MaxTokens int
}

const (
	defaultTimeoutSeconds = 60
	defaultMaxTokens      = 2048
)

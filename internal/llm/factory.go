package llm

import (
	"context"
	"fmt"
	"strings"

	"claimlens/internal/model"
)

// NewProvider creates a provider from one configuration slot.
// An empty provider name returns (nil, nil): the slot is disabled,
// which is how the optional secondary provider is switched off.
func NewProvider(ctx context.Context, config model.LLMConfig) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "xai", "grok", "openai":
		return NewOpenAIProvider(config)

	case "gemini", "google":
		return NewGeminiProvider(ctx, config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: xai, openai, gemini, anthropic, ollama)", config.Provider)
	}
}

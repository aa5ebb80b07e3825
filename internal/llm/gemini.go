package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"claimlens/internal/model"
)

// GeminiProvider implements Provider for Google's Gemini models
type GeminiProvider struct {
	client *genai.Client
	config model.LLMConfig
}

// NewGeminiProvider creates a Gemini provider
func NewGeminiProvider(ctx context.Context, config model.LLMConfig) (*GeminiProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Evaluate submits the prompt via the Gemini generate-content API
func (p *GeminiProvider) Evaluate(ctx context.Context, req EvaluateRequest) (*model.ProviderResult, error) {
	modelName := req.Model
	if modelName == "" {
		modelName = p.config.Model
	}

	gm := p.client.GenerativeModel(modelName)
	gm.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	gm.ResponseMIMEType = "application/json"

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens > 0 {
		gm.SetMaxOutputTokens(int32(maxTokens))
	}
	gm.SetTemperature(0.2)

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = defaultTimeoutSeconds * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := gm.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("no response from gemini")
	}

	return ParseResult(text)
}

// Close releases the underlying client
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

// responseText concatenates the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	return text
}

package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"claimlens/internal/model"
)

// ParseResult decodes a provider's text response into a ProviderResult.
// Models wrap JSON in markdown fences or prose more often than not, so
// the parser extracts the outermost JSON object before decoding, then
// normalizes statuses and tiers to the canonical vocabulary.
func ParseResult(text string) (*model.ProviderResult, error) {
	payload := extractJSON(text)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var result model.ProviderResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	for i := range result.Findings {
		f := &result.Findings[i]
		f.Claim = strings.TrimSpace(f.Claim)
		f.Status = model.ParseStatus(string(f.Status))
		for j := range f.Evidence {
			f.Evidence[j].Tier = model.ParseTier(string(f.Evidence[j].Tier))
		}
	}

	return &result, nil
}

// extractJSON returns the outermost {...} object in the text
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

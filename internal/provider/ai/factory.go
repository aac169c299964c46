package ai

import (
	"fmt"
	"strings"

	"repurpose-backend/internal/infra"
)

// New selects a render provider from configuration. An unknown provider name
// is a startup error, not a fallback.
func New(cfg *infra.Config) (Provider, error) {
	switch strings.ToLower(cfg.AIProvider) {
	case "mock":
		return NewMockProvider(), nil
	case "openai":
		return NewOpenAIProvider(cfg.OpenAIAPIKey), nil
	case "gemini":
		return NewGeminiProvider(cfg.GeminiAPIKey), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.AIProvider)
	}
}

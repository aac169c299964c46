package ai

import "context"

// GeminiProvider is a placeholder for the Gemini vision/image integration.
type GeminiProvider struct {
	apiKey string
}

func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey}
}

func (p *GeminiProvider) Analyze(ctx context.Context, assetRef string) (Analysis, error) {
	return Analysis{DetectedElements: []string{"product"}, Width: 1024, Height: 768}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, input GenerateInput) (GenerateResult, error) {
	return GenerateResult{URL: "/data/generated/gemini_" + input.AssetID.String() + ".png"}, nil
}

var _ Provider = (*GeminiProvider)(nil)

package ai

import "context"

// OpenAIProvider is a placeholder for the OpenAI vision/image integration.
// It satisfies the Provider contract so the pipeline can be pointed at it
// before the vendor calls are filled in.
type OpenAIProvider struct {
	apiKey string
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{apiKey: apiKey}
}

func (p *OpenAIProvider) Analyze(ctx context.Context, assetRef string) (Analysis, error) {
	return Analysis{DetectedElements: []string{"face", "text"}, Width: 800, Height: 600}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, input GenerateInput) (GenerateResult, error) {
	return GenerateResult{URL: "/data/generated/openai_" + input.AssetID.String() + ".png"}, nil
}

var _ Provider = (*OpenAIProvider)(nil)

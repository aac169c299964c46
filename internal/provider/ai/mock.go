package ai

import "context"

// MockProvider returns canned analysis and render results. It is the default
// capability for development and tests.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Analyze(ctx context.Context, assetRef string) (Analysis, error) {
	return Analysis{
		DetectedElements: []string{"mock-element"},
		Width:            640,
		Height:           480,
		DPI:              72,
	}, nil
}

func (p *MockProvider) Generate(ctx context.Context, input GenerateInput) (GenerateResult, error) {
	return GenerateResult{
		URL:    "/data/generated/" + input.AssetID.String() + "_" + input.FormatID.String() + ".png",
		IsNsfw: false,
	}, nil
}

var _ Provider = (*MockProvider)(nil)

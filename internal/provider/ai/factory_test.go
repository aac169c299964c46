package ai

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"repurpose-backend/internal/infra"
)

func TestNewSelectsProvider(t *testing.T) {
	cases := []struct {
		name     string
		provider string
		want     any
	}{
		{"mock", "mock", &MockProvider{}},
		{"openai", "openai", &OpenAIProvider{}},
		{"gemini", "Gemini", &GeminiProvider{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New(&infra.Config{AIProvider: tc.provider})
			require.NoError(t, err)
			require.IsType(t, tc.want, p)
		})
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(&infra.Config{AIProvider: "stable-diffusion"})
	require.Error(t, err)
}

func TestMockProviderRoundTrip(t *testing.T) {
	p := NewMockProvider()

	analysis, err := p.Analyze(context.Background(), "/data/uploads/x.png")
	require.NoError(t, err)
	require.Equal(t, 640, analysis.Width)
	require.NotEmpty(t, analysis.DetectedElements)

	assetID, formatID := uuid.New(), uuid.New()
	result, err := p.Generate(context.Background(), GenerateInput{
		Analysis: analysis, TargetWidth: 1080, TargetHeight: 1080,
		AssetID: assetID, FormatID: formatID,
	})
	require.NoError(t, err)
	require.Contains(t, result.URL, assetID.String())
	require.Contains(t, result.URL, formatID.String())
	require.False(t, result.IsNsfw)
}

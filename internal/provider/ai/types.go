package ai

import (
	"context"

	"github.com/google/uuid"
)

// Analysis is asset-level metadata detected once per source asset and
// reused across every requested format.
type Analysis struct {
	DetectedElements []string `json:"detectedElements"`
	Width            int      `json:"width"`
	Height           int      `json:"height"`
	DPI              int      `json:"dpi,omitempty"`
}

// GenerateInput carries everything a provider needs to render one
// (asset, format) pair.
type GenerateInput struct {
	Analysis     Analysis
	TargetWidth  int
	TargetHeight int
	FormatID     uuid.UUID
	ProjectID    uuid.UUID
	AssetID      uuid.UUID
}

// GenerateResult describes a rendered derived asset.
type GenerateResult struct {
	URL    string
	IsNsfw bool
}

// Provider is the render capability invoked by the generation orchestrator.
// Implementations are selected once at process start; the orchestrator
// depends only on this contract.
type Provider interface {
	Analyze(ctx context.Context, assetRef string) (Analysis, error)
	Generate(ctx context.Context, input GenerateInput) (GenerateResult, error)
}

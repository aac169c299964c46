package generation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"repurpose-backend/internal/domain"
	"repurpose-backend/internal/provider/ai"
)

const (
	// Progress reserved for setup before the first pair is rendered.
	initialProgress = 10
	// Canonical output kind for every derived asset.
	outputFileType = "png"

	uploadsPrefix = "/data/uploads"
)

// Orchestrator runs one generation job end to end: it walks the cross
// product of source assets and requested formats, invokes the render
// provider per pair, appends derived assets and advances job progress.
//
// A job is mutated only by the single orchestrator run processing it, so no
// locking beyond the stores' own writes is needed.
type Orchestrator struct {
	jobs     domain.JobRepository
	results  domain.GeneratedAssetRepository
	formats  domain.FormatRepository
	provider ai.Provider
	logger   zerolog.Logger
}

func NewOrchestrator(
	jobs domain.JobRepository,
	results domain.GeneratedAssetRepository,
	formats domain.FormatRepository,
	provider ai.Provider,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		jobs:     jobs,
		results:  results,
		formats:  formats,
		provider: provider,
		logger:   logger,
	}
}

// Run executes the job described by the payload. It never returns an error
// to its caller: every fault is converted into a failed status write so the
// queue does not see the task as retriable. Partial results written before a
// fault are retained.
func (o *Orchestrator) Run(ctx context.Context, task domain.TaskPayload) {
	err := o.run(ctx, task)
	if err == nil {
		return
	}
	o.logger.Error().Err(err).Str("job_id", task.JobID.String()).Msg("generation: job failed")
	if setErr := o.jobs.SetStatus(ctx, task.JobID, domain.JobStatusFailed, 0); setErr != nil {
		o.logger.Error().Err(setErr).Str("job_id", task.JobID.String()).Msg("generation: failed-status write failed")
	}
}

func (o *Orchestrator) run(ctx context.Context, task domain.TaskPayload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during generation: %v", r)
		}
	}()

	if err := o.jobs.SetStatus(ctx, task.JobID, domain.JobStatusProcessing, initialProgress); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	// One batch lookup; descriptors are treated as immutable for the run.
	// Unknown ids stay unresolved and are skipped per pair below.
	formatMap, err := o.formats.Resolve(ctx, task.FormatIDs)
	if err != nil {
		return fmt.Errorf("resolve formats: %w", err)
	}

	// First 10% covers setup; the remaining 90% is spread evenly across all
	// (asset, format) pairs, with increments clamped to at least 1 so
	// progress always advances.
	progress := initialProgress
	totalSteps := len(task.AssetIDs) * max(1, len(task.FormatIDs))
	if totalSteps < 1 {
		totalSteps = 1
	}
	stepInc := max(1, 90/totalSteps)

	for _, assetID := range task.AssetIDs {
		// Analysis is asset-level metadata, so one call per asset is shared
		// across every requested format.
		analysis, err := o.provider.Analyze(ctx, sourceRef(assetID))
		if err != nil {
			return fmt.Errorf("analyze asset %s: %w", assetID, err)
		}

		for _, formatID := range task.FormatIDs {
			format, ok := formatMap[formatID]
			if !ok {
				continue
			}

			result, err := o.provider.Generate(ctx, ai.GenerateInput{
				Analysis:     analysis,
				TargetWidth:  format.Width,
				TargetHeight: format.Height,
				FormatID:     formatID,
				ProjectID:    task.ProjectID,
				AssetID:      assetID,
			})
			if err != nil {
				return fmt.Errorf("generate asset %s format %s: %w", assetID, formatID, err)
			}

			fid := formatID
			// Dimensions come from the descriptor, not the render result, so
			// the stored row always matches the requested target size.
			if err := o.results.Append(ctx, &domain.GeneratedAsset{
				JobID:           task.JobID,
				OriginalAssetID: assetID,
				AssetFormatID:   &fid,
				StoragePath:     result.URL,
				FileType:        outputFileType,
				Dimensions:      domain.Dimensions{Width: format.Width, Height: format.Height},
				IsNsfw:          result.IsNsfw,
			}); err != nil {
				return fmt.Errorf("store generated asset: %w", err)
			}

			progress = min(100, progress+stepInc)
			if err := o.jobs.SetStatus(ctx, task.JobID, domain.JobStatusProcessing, progress); err != nil {
				return fmt.Errorf("update progress: %w", err)
			}
		}
	}

	if err := o.jobs.SetStatus(ctx, task.JobID, domain.JobStatusCompleted, 100); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

func sourceRef(assetID uuid.UUID) string {
	return fmt.Sprintf("%s/%s.png", uploadsPrefix, assetID)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driving"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/logger"
)

// OutputSlug is the dataset slug under which the final deduplicated
// output is persisted.
const OutputSlug = "deduped"

// Ensure PipelineService implements the interface.
var _ driving.Pipeline = (*PipelineService)(nil)

// PipelineService runs the full aggregation: normalise every
// configured source, merge and deduplicate in priority order, export
// the result as a newline-delimited text artifact. Every stage's
// timing and every source's outcome is recorded in the run-state
// store.
type PipelineService struct {
	sources    []domain.Source
	normaliser *NormaliseService
	deduper    driving.Deduper
	datasets   driven.DatasetStore
	runs       driven.RunStateStore
	strategy   string
	outputPath string
}

// NewPipelineService creates a new pipeline service. strategy names
// the deduper implementation for run-state records ("frame" or
// "streaming").
func NewPipelineService(
	sources []domain.Source,
	normaliser *NormaliseService,
	deduper driving.Deduper,
	strategy string,
	datasets driven.DatasetStore,
	runs driven.RunStateStore,
	outputPath string,
) *PipelineService {
	return &PipelineService{
		sources:    sources,
		normaliser: normaliser,
		deduper:    deduper,
		strategy:   strategy,
		datasets:   datasets,
		runs:       runs,
		outputPath: outputPath,
	}
}

// Run executes all stages and returns a summary of the run.
func (p *PipelineService) Run(ctx context.Context) (*driving.RunSummary, error) {
	if len(p.sources) == 0 {
		return nil, fmt.Errorf("no sources configured: %w", domain.ErrNoValidData)
	}

	runID := uuid.NewString()
	if err := p.runs.StartRun(ctx, domain.RunState{
		ID:        runID,
		Strategy:  p.strategy,
		StartedAt: time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("recording run start: %w", err)
	}

	logger.Section("Normalise")
	stageStart := time.Now()
	normResults, err := p.normaliser.Normalise(ctx, p.sources)
	if err != nil {
		return nil, fmt.Errorf("normalise stage: %w", err)
	}
	p.recordStage(ctx, runID, domain.StageNormalise, time.Since(stageStart))
	for _, nr := range normResults {
		switch {
		case nr.Err != nil:
			logger.Warn("Source %s failed: %v", nr.Slug, nr.Err)
		case nr.Cached:
			logger.Debug("Source %s reused cached dataset", nr.Slug)
		default:
			logger.Debug("Source %s normalised: %d unique", nr.Slug, nr.Unique)
		}
	}

	logger.Section("Dedupe")
	stageStart = time.Now()
	dedupeResult, err := p.deduper.Dedupe(ctx, p.sources)
	if err != nil {
		return nil, fmt.Errorf("dedupe stage: %w", err)
	}
	p.recordStage(ctx, runID, domain.StageDedupe, time.Since(stageStart))
	for _, sr := range dedupeResult.Sources {
		if err := p.runs.RecordSource(ctx, runID, sr); err != nil {
			logger.Warn("Recording source %s: %v", sr.Slug, err)
		}
	}

	logger.Section("Export")
	stageStart = time.Now()
	if err := ExportText(p.outputPath, dedupeResult.Values); err != nil {
		return nil, fmt.Errorf("export stage: %w", err)
	}
	if err := p.datasets.Save(ctx, OutputSlug, dedupeResult.Values); err != nil {
		return nil, fmt.Errorf("persisting output dataset: %w", err)
	}
	p.recordStage(ctx, runID, domain.StageExport, time.Since(stageStart))

	if err := p.runs.FinishRun(ctx, runID, dedupeResult.Stats); err != nil {
		logger.Warn("Recording run finish: %v", err)
	}

	return &driving.RunSummary{
		RunID:            runID,
		OutputPath:       p.outputPath,
		Unique:           dedupeResult.Stats.Unique,
		Scanned:          dedupeResult.Stats.Scanned,
		SourcesProcessed: dedupeResult.Stats.SourcesProcessed,
	}, nil
}

// recordStage stores a stage timing, logging rather than failing on
// bookkeeping errors.
func (p *PipelineService) recordStage(ctx context.Context, runID, stage string, elapsed time.Duration) {
	if err := p.runs.RecordStage(ctx, runID, domain.StageTiming{Stage: stage, Elapsed: elapsed}); err != nil {
		logger.Warn("Recording stage %s: %v", stage, err)
	}
}

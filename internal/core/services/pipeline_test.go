package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/adapters/driven/storage/memory"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"
)

func TestPipeline_RunEndToEnd(t *testing.T) {
	cacheDir := t.TempDir()
	writeSourceFile(t, cacheDir, "alpha", "names.txt", "Alice\nBob\n")
	writeSourceFile(t, cacheDir, "beta", "names.txt", "bob\nCarol\n")

	datasets := memory.NewDatasetStore()
	runs := memory.NewRunStateStore()
	outputPath := filepath.Join(t.TempDir(), "out", "nicknames.txt")

	sources := []domain.Source{
		{Slug: "alpha", Priority: 0},
		{Slug: "beta", Priority: 1},
	}
	pipeline := NewPipelineService(
		sources,
		newTestNormaliseService(cacheDir, datasets),
		NewStreamingDeduper(datasets, nil),
		"streaming",
		datasets,
		runs,
		outputPath,
	)

	summary, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Unique)
	assert.Equal(t, 4, summary.Scanned)
	assert.Equal(t, 2, summary.SourcesProcessed)
	assert.Equal(t, outputPath, summary.OutputPath)

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "alice\nbob\ncarol\n", string(content))

	// The output is also persisted as a dataset.
	ds, err := datasets.Open(context.Background(), OutputSlug)
	require.NoError(t, err)
	values, err := ds.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, values)

	// Run state was recorded and finished.
	run, err := runs.Get(context.Background(), summary.RunID)
	require.NoError(t, err)
	assert.Equal(t, "streaming", run.Strategy)
	assert.False(t, run.FinishedAt.IsZero())
	assert.Equal(t, 3, run.Stats.Unique)

	results, err := runs.SourceResults(context.Background(), summary.RunID)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "alpha", results[0].Slug)
	assert.Equal(t, "beta", results[1].Slug)
}

func TestPipeline_SkipsBrokenSource(t *testing.T) {
	cacheDir := t.TempDir()
	writeSourceFile(t, cacheDir, "alpha", "names.txt", "alice\n")
	// "broken" resolves to a directory that does not exist.

	datasets := memory.NewDatasetStore()
	runs := memory.NewRunStateStore()
	outputPath := filepath.Join(t.TempDir(), "nicknames.txt")

	sources := []domain.Source{
		{Slug: "broken", Priority: 0},
		{Slug: "alpha", Priority: 1},
	}
	pipeline := NewPipelineService(
		sources,
		newTestNormaliseService(cacheDir, datasets),
		NewFrameDeduper(datasets, nil),
		"frame",
		datasets,
		runs,
		outputPath,
	)

	summary, err := pipeline.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Unique)
	assert.Equal(t, 1, summary.SourcesProcessed)
}

func TestPipeline_NoSources(t *testing.T) {
	datasets := memory.NewDatasetStore()
	runs := memory.NewRunStateStore()

	pipeline := NewPipelineService(
		nil,
		newTestNormaliseService(t.TempDir(), datasets),
		NewFrameDeduper(datasets, nil),
		"frame",
		datasets,
		runs,
		filepath.Join(t.TempDir(), "out.txt"),
	)

	_, err := pipeline.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoValidData)
}

func TestPipeline_AllSourcesEmpty(t *testing.T) {
	datasets := memory.NewDatasetStore()
	runs := memory.NewRunStateStore()

	pipeline := NewPipelineService(
		[]domain.Source{{Slug: "ghost"}},
		newTestNormaliseService(t.TempDir(), datasets),
		NewStreamingDeduper(datasets, nil),
		"streaming",
		datasets,
		runs,
		filepath.Join(t.TempDir(), "out.txt"),
	)

	_, err := pipeline.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoValidData)
}

func TestExportText_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")
	require.NoError(t, ExportText(path, []string{"a", "b", "c"}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", string(content))
}

func TestExportText_EmptyValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, ExportText(path, nil))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, content)
}

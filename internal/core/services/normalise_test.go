package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/adapters/driven/storage/memory"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/connectors/filesystem"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/normalisers/name"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/readers"
)

// writeSourceFile creates cacheDir/slug/name with the given content.
func writeSourceFile(t *testing.T, cacheDir, slug, fileName, content string) {
	t.Helper()
	dir := filepath.Join(cacheDir, slug)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0o644))
}

func newTestNormaliseService(cacheDir string, store *memory.DatasetStore, opts ...NormaliseOption) *NormaliseService {
	return NewNormaliseService(
		filesystem.New(cacheDir),
		readers.NewRegistry(),
		name.New(),
		store,
		opts...,
	)
}

func TestNormaliseService_NormalisesAndDedupesWithinSource(t *testing.T) {
	cacheDir := t.TempDir()
	writeSourceFile(t, cacheDir, "alpha", "names.txt", "Alice\nBOB\nalice\n***\nÉric\n")

	store := memory.NewDatasetStore()
	svc := newTestNormaliseService(cacheDir, store)

	results, err := svc.Normalise(context.Background(), []domain.Source{{Slug: "alpha"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, 5, results[0].Records)
	assert.Equal(t, 3, results[0].Unique)

	ds, err := store.Open(context.Background(), "alpha")
	require.NoError(t, err)
	values, err := ds.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "eric"}, values)
}

func TestNormaliseService_SkipsFailedSource(t *testing.T) {
	cacheDir := t.TempDir()
	writeSourceFile(t, cacheDir, "good", "a.txt", "alice\n")
	// "empty" exists but holds only a metadata file.
	writeSourceFile(t, cacheDir, "empty", "README.md.bak", "nothing here")

	store := memory.NewDatasetStore()
	svc := newTestNormaliseService(cacheDir, store)

	sources := []domain.Source{{Slug: "good"}, {Slug: "empty"}, {Slug: "absent"}}
	results, err := svc.Normalise(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Error(t, results[2].Err)

	exists, err := store.Exists(context.Background(), "good")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = store.Exists(context.Background(), "empty")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNormaliseService_ReusesCachedDataset(t *testing.T) {
	cacheDir := t.TempDir()
	writeSourceFile(t, cacheDir, "alpha", "a.txt", "new-value\n")

	store := memory.NewDatasetStore()
	require.NoError(t, store.Save(context.Background(), "alpha", []string{"cached"}))

	svc := newTestNormaliseService(cacheDir, store)
	results, err := svc.Normalise(context.Background(), []domain.Source{{Slug: "alpha"}})
	require.NoError(t, err)
	assert.True(t, results[0].Cached)

	ds, err := store.Open(context.Background(), "alpha")
	require.NoError(t, err)
	values, err := ds.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cached"}, values)
}

func TestNormaliseService_ForceReprocesses(t *testing.T) {
	cacheDir := t.TempDir()
	writeSourceFile(t, cacheDir, "alpha", "a.txt", "fresh\n")

	store := memory.NewDatasetStore()
	require.NoError(t, store.Save(context.Background(), "alpha", []string{"stale"}))

	svc := newTestNormaliseService(cacheDir, store, WithForce(true))
	results, err := svc.Normalise(context.Background(), []domain.Source{{Slug: "alpha"}})
	require.NoError(t, err)
	assert.False(t, results[0].Cached)

	ds, err := store.Open(context.Background(), "alpha")
	require.NoError(t, err)
	values, err := ds.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, values)
}

func TestNormaliseService_MultipleFilesPerSource(t *testing.T) {
	cacheDir := t.TempDir()
	writeSourceFile(t, cacheDir, "alpha", "01.txt", "alice\nbob\n")
	writeSourceFile(t, cacheDir, "alpha", "02.csv", "username,age\ncarol,30\nbob,25\n")

	store := memory.NewDatasetStore()
	svc := newTestNormaliseService(cacheDir, store)

	results, err := svc.Normalise(context.Background(), []domain.Source{{Slug: "alpha"}})
	require.NoError(t, err)
	require.NoError(t, results[0].Err)

	ds, err := store.Open(context.Background(), "alpha")
	require.NoError(t, err)
	values, err := ds.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, values)
}

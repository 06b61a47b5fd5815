package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its combined
// output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		flagManifest = "sources.yaml"
		flagDataDir = ""
		flagVerbose = false
		flagHighVolume = false
		flagForce = false
		flagOutput = ""
		flagWorkers = 0
		flagBatchSize = 0
		flagCleanDatasets = false
		flagConfigDir = ""
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// writeTestManifest creates a manifest plus cached data for its
// sources and returns the manifest path.
func writeTestManifest(t *testing.T, dir string, sources map[string]string) string {
	t.Helper()
	cacheDir := filepath.Join(dir, "cache")

	manifest := "defaults:\n  cache_dir: " + cacheDir + "\nsources:\n"
	for _, slug := range []string{"alpha", "beta"} {
		content, ok := sources[slug]
		if !ok {
			continue
		}
		manifest += "  - slug: " + slug + "\n"
		sourceDir := filepath.Join(cacheDir, slug)
		require.NoError(t, os.MkdirAll(sourceDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "names.txt"), []byte(content), 0o644))
	}

	path := filepath.Join(dir, "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))
	return path
}

func TestRunCmd_FullPipeline(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeTestManifest(t, dir, map[string]string{
		"alpha": "Alice\nBob\n",
		"beta":  "bob\nCarol\n",
	})
	output := filepath.Join(dir, "out.txt")

	out, err := execute(t,
		"--manifest", manifestPath,
		"--data-dir", filepath.Join(dir, "data"),
		"run", "--output", output,
	)
	require.NoError(t, err, out)
	assert.Contains(t, out, "complete")

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "alice\nbob\ncarol\n", string(content))
}

func TestRunCmd_HighVolumeMatchesDefault(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeTestManifest(t, dir, map[string]string{
		"alpha": "x\ny\n",
		"beta":  "y\nz\n",
	})
	defaultOut := filepath.Join(dir, "default.txt")
	streamOut := filepath.Join(dir, "stream.txt")

	_, err := execute(t,
		"--manifest", manifestPath,
		"--data-dir", filepath.Join(dir, "data1"),
		"run", "--output", defaultOut,
	)
	require.NoError(t, err)

	_, err = execute(t,
		"--manifest", manifestPath,
		"--data-dir", filepath.Join(dir, "data2"),
		"run", "--high-volume", "--batch-size", "1", "--output", streamOut,
	)
	require.NoError(t, err)

	a, err := os.ReadFile(defaultOut)
	require.NoError(t, err)
	b, err := os.ReadFile(streamOut)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestSourcesCmd_ListsCacheState(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeTestManifest(t, dir, map[string]string{"alpha": "alice\n"})

	out, err := execute(t, "--manifest", manifestPath, "sources")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "valid")
}

func TestSplitAndDedupeChunksCmds(t *testing.T) {
	dir := t.TempDir()
	inputDir := filepath.Join(dir, "input")
	chunkDir := filepath.Join(dir, "chunks")
	require.NoError(t, os.MkdirAll(inputDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "a.txt"), []byte("a\nb\na\nc\n"), 0o644))

	out, err := execute(t, "split", inputDir, chunkDir, "--max-lines", "2")
	require.NoError(t, err, out)
	assert.Contains(t, out, "2 chunk files")

	outputFile := filepath.Join(dir, "deduped.txt")
	out, err = execute(t, "dedupe-chunks", chunkDir, outputFile)
	require.NoError(t, err, out)
	assert.Contains(t, out, "3 unique lines")

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", string(content))
}

func TestRunCmd_MissingManifest(t *testing.T) {
	_, err := execute(t, "--manifest", filepath.Join(t.TempDir(), "nope.yaml"), "run")
	assert.Error(t, err)
}

func TestCleanCmd_RemovesStaleCacheDirs(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeTestManifest(t, dir, map[string]string{"alpha": "alice\n"})

	// A cache directory for a source the manifest no longer names.
	staleDir := filepath.Join(dir, "cache", "removed-source")
	require.NoError(t, os.MkdirAll(staleDir, 0o755))

	out, err := execute(t, "--manifest", manifestPath, "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 stale cache directories")

	_, statErr := os.Stat(staleDir)
	assert.True(t, os.IsNotExist(statErr))
}

package readers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestTextReader(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "names.txt", "alice\n\nbob\n  carol  \n")

	records, err := NewTextReader().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, records)
}

func TestTextReader_MissingFile(t *testing.T) {
	_, err := NewTextReader().Read(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestCSVReader_NamedColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "users.csv", "id,username,age\n1,alice,30\n2,bob,41\n")

	records, err := NewCSVReader().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, records)
}

func TestCSVReader_FallsBackToFirstColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plain.csv", "colA,colB\nalice,x\nbob,y\n")

	records, err := NewCSVReader().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, records)
}

func TestCSVReader_TSVAndRaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "users.tsv", "name\tscore\nalice\t1\nbob\ncarol\t3\textra\n")

	records, err := NewCSVReader().Read(context.Background(), path)
	require.NoError(t, err)
	// Ragged rows keep the name column when it exists
	assert.Equal(t, []string{"alice", "bob", "carol"}, records)
}

func TestJSONReader_ArrayOfStrings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "names.json", `["alice", "bob", ""]`)

	records, err := NewJSONReader().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, records)
}

func TestJSONReader_ArrayOfObjects(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "users.json",
		`[{"id": 1, "nick": "alice"}, {"id": 2, "nick": "bob"}]`)

	records, err := NewJSONReader().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, records)
}

func TestRegistry_DispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	txt := writeFile(t, dir, "a.txt", "alice\n")
	csv := writeFile(t, dir, "b.csv", "username\nbob\n")

	reg := NewRegistry()

	records, err := reg.Read(context.Background(), txt)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, records)

	records, err = reg.Read(context.Background(), csv)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, records)
}

func TestRegistry_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "img.png", "not-a-name-file")

	_, err := NewRegistry().Read(context.Background(), path)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
}

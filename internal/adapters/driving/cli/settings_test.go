package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_SetGetRoundTrip(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "settings", "set", "output.path", "/tmp/out.txt", "--config-dir", dir)
	require.NoError(t, err, out)

	out, err = execute(t, "settings", "get", "output.path", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "/tmp/out.txt")
}

func TestSettingsCmd_GetUnset(t *testing.T) {
	_, err := execute(t, "settings", "get", "nope", "--config-dir", t.TempDir())
	assert.Error(t, err)
}

func TestSettingsCmd_Show(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "settings", "set", "workers", "8", "--config-dir", dir)
	require.NoError(t, err)

	out, err := execute(t, "settings", "show", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "workers")
}

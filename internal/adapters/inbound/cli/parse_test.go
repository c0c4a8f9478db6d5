package cli_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuild_JSON(t *testing.T) {
	out, err := execute(t, "parse", "build", filepath.Join(logsDir, "build-failure.log"), "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got, "summary")
	assert.NotContains(t, got, "raw_content")
	assert.Contains(t, out, `"status": "FAILED"`)
}

func TestParseBuild_IncludeRaw(t *testing.T) {
	out, err := execute(t, "parse", "build", filepath.Join(logsDir, "build-success.log"), "--json", "--include-raw")
	require.NoError(t, err)
	assert.Contains(t, out, `"raw_content"`)
}

func TestParseBuild_TUI(t *testing.T) {
	out, err := execute(t, "parse", "build", filepath.Join(logsDir, "build-success.log"))
	require.NoError(t, err)
	assert.Contains(t, out, "SUCCESS")
}

func TestParseStyle_TUI(t *testing.T) {
	out, err := execute(t, "parse", "style", filepath.Join(logsDir, "checkstyle-violations.log"))
	require.NoError(t, err)
	assert.Contains(t, out, "ISSUES_FOUND")
}

func TestParseStyle_MissingFile(t *testing.T) {
	_, err := execute(t, "parse", "style", filepath.Join(t.TempDir(), "nope.log"))
	assert.Error(t, err)
}

func TestParseBuild_RequiresPath(t *testing.T) {
	_, err := execute(t, "parse", "build")
	assert.Error(t, err)
}

func TestParseAll_DetectsKinds(t *testing.T) {
	out, err := execute(t, "parse", "all", "--json",
		filepath.Join(logsDir, "build-success.log"),
		filepath.Join(logsDir, "checkstyle-passed.log"),
	)
	require.NoError(t, err)

	var got []struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "build", got[0].Kind)
	assert.Equal(t, "style", got[1].Kind)
}

func TestParseAll_ReportsUnreadable(t *testing.T) {
	out, err := execute(t, "parse", "all",
		filepath.Join(logsDir, "build-success.log"),
		filepath.Join(t.TempDir(), "missing.log"),
	)
	assert.ErrorContains(t, err, "1 of 2")
	assert.Contains(t, out, "missing.log")
}

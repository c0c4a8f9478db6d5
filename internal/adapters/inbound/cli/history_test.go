package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/openkraft/javaqc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Empty(t *testing.T) {
	out, err := execute(t, "history", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No run history found")
}

func TestHistory_AfterRun(t *testing.T) {
	results := t.TempDir()
	_, err := execute(t, "run", "--path", t.TempDir(), "--results-dir", results)
	require.NoError(t, err)

	out, err := execute(t, "history", results, "--json")
	require.NoError(t, err)
	var entries []domain.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, domain.StatusUnknown, entries[0].BuildStatus)
}

func TestHistory_Latest(t *testing.T) {
	results := t.TempDir()
	out, err := execute(t, "history", results, "--latest")
	require.NoError(t, err)
	assert.Contains(t, out, "No reports in")

	_, err = execute(t, "run", "--path", t.TempDir(), "--results-dir", results)
	require.NoError(t, err)

	out, err = execute(t, "history", results, "--latest", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"run_id"`)
}

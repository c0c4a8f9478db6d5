package cli_test

import (
	"bytes"
	"testing"

	"github.com/openkraft/javaqc/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const logsDir = "../../../../testdata/logs"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "javaqc dev")
}

func TestRootHelpListsCommands(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	for _, name := range []string{"run", "parse", "history", "watch", "mcp"} {
		assert.Contains(t, out, name)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, "score")
	assert.Error(t, err)
}

func TestExitError(t *testing.T) {
	err := &cli.ExitError{Code: 3}
	assert.Equal(t, "exit status 3", err.Error())
}

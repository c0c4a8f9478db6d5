package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/openkraft/javaqc/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

// ExitError carries a process exit status out of a command without
// printing anything further.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "javaqc",
		Short: "Build and style-check Java homework repositories",
		Long:  "javaqc clones a Java repository, compiles it with javac, runs Checkstyle and turns both transcripts into a structured quality report.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logging.Init(cmd.ErrOrStderr(), level)
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

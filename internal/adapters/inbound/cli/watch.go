package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openkraft/javaqc/internal/adapters/inbound/watch"
)

func newWatchCmd() *cobra.Command {
	var (
		repoPath   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Render build logs and Checkstyle reports as they are written",
		Long:  "Watch <repo>/build-logs and <repo>/checkstyle-reports and print a parsed view of every new or rewritten log until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(repoPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, cmd, abs, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&repoPath, "path", ".", "Repository to watch")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print each parsed log as JSON")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, repo string, jsonOutput bool) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl-C to stop)\n", repo)
	w := watch.New(newParseService(), cmd.OutOrStdout(), watch.Options{JSON: jsonOutput})
	return w.Run(ctx, repo)
}

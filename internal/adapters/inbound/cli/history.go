package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/javaqc/internal/adapters/outbound/report"
	"github.com/openkraft/javaqc/internal/adapters/outbound/tui"
	"github.com/openkraft/javaqc/internal/domain"
)

func newHistoryCmd() *cobra.Command {
	var (
		jsonOutput bool
		latest     bool
	)

	cmd := &cobra.Command{
		Use:   "history [results-dir]",
		Short: "Show past quality check runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := domain.DefaultResultsDir
			if len(args) > 0 {
				dir = args[0]
			}
			store := report.New()

			if latest {
				r, err := store.Latest(dir)
				if errors.Is(err, report.ErrNoReports) {
					fmt.Fprintf(cmd.OutOrStdout(), "No reports in %s\n", dir)
					return nil
				}
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd.OutOrStdout(), r)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderQualityReport(r))
				return nil
			}

			entries, err := store.History(dir)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&latest, "latest", false, "Show the most recent report instead of the run list")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/javaqc/internal/adapters/outbound/tui"
	"github.com/openkraft/javaqc/internal/application"
)

type parseFlags struct {
	json       bool
	includeRaw bool
}

func (p *parseFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.json, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&p.includeRaw, "include-raw", false, "Keep the raw log text in the output")
}

func (p *parseFlags) options() application.ParseOptions {
	return application.ParseOptions{IncludeRaw: p.includeRaw}
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse build and Checkstyle transcripts",
	}
	cmd.AddCommand(newParseBuildCmd())
	cmd.AddCommand(newParseStyleCmd())
	cmd.AddCommand(newParseAllCmd())
	return cmd
}

func newParseBuildCmd() *cobra.Command {
	var pf parseFlags
	cmd := &cobra.Command{
		Use:   "build <log>",
		Short: "Parse a javac build log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newParseService().ParseBuildLog(args[0], pf.options())
			if err != nil {
				return err
			}
			if pf.json {
				return writeJSON(cmd.OutOrStdout(), r)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderBuildReport(r))
			return nil
		},
	}
	pf.bind(cmd)
	return cmd
}

func newParseStyleCmd() *cobra.Command {
	var pf parseFlags
	cmd := &cobra.Command{
		Use:   "style <log>",
		Short: "Parse a Checkstyle report transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newParseService().ParseStyleLog(args[0], pf.options())
			if err != nil {
				return err
			}
			if pf.json {
				return writeJSON(cmd.OutOrStdout(), r)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderStyleReport(r))
			return nil
		},
	}
	pf.bind(cmd)
	return cmd
}

func newParseAllCmd() *cobra.Command {
	var pf parseFlags
	cmd := &cobra.Command{
		Use:   "all <log>...",
		Short: "Parse several transcripts, detecting the kind of each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := newParseService().ParseBatch(cmd.Context(), args, pf.options())
			if err != nil {
				return err
			}
			if pf.json {
				return writeJSON(cmd.OutOrStdout(), results)
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				fmt.Fprintf(out, "\n── %s\n", r.Path)
				switch {
				case r.Build != nil:
					fmt.Fprint(out, tui.RenderBuildReport(r.Build))
				case r.Style != nil:
					fmt.Fprint(out, tui.RenderStyleReport(r.Style))
				default:
					failed++
					fmt.Fprintf(out, "  error: %s\n", r.Err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d logs could not be parsed", failed, len(results))
			}
			return nil
		},
	}
	pf.bind(cmd)
	return cmd
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openkraft/javaqc/internal/adapters/outbound/checkstyle"
	"github.com/openkraft/javaqc/internal/adapters/outbound/config"
	"github.com/openkraft/javaqc/internal/adapters/outbound/gitrepo"
	"github.com/openkraft/javaqc/internal/adapters/outbound/javac"
	"github.com/openkraft/javaqc/internal/adapters/outbound/report"
	"github.com/openkraft/javaqc/internal/adapters/outbound/scanner"
	"github.com/openkraft/javaqc/internal/adapters/outbound/tui"
	"github.com/openkraft/javaqc/internal/application"
	"github.com/openkraft/javaqc/internal/domain"
)

func newRunCmd() *cobra.Command {
	var (
		configPath string
		flags      domain.Config
		localPath  string
		jsonOutput bool
		includeRaw bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Clone, build and style-check a repository",
		Long: "Clone the configured repository (or use --path), compile every Java source with javac, " +
			"run Checkstyle and write a JSON quality report to the results directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolving working directory: %w", err)
			}

			fileCfg, err := config.New().Load(configPath)
			if err != nil {
				return err
			}
			cfg := domain.MergeConfig(fileCfg, flags).WithDefaults(cwd)

			opts := application.RunOptions{IncludeRaw: includeRaw}
			if localPath != "" {
				if opts.LocalPath, err = filepath.Abs(localPath); err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}
			}

			src := scanner.New()
			svc := application.NewCheckService(
				gitrepo.New(),
				javac.New(src),
				checkstyle.New(checkstyle.Settings{
					Home:    filepath.Join(cwd, "checkstyle"),
					JarPath: cfg.Checkstyle.JarPath,
					Version: cfg.Checkstyle.Version,
				}, src),
				newParseService(),
				report.New(),
			)

			res, err := svc.Run(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := writeJSON(cmd.OutOrStdout(), res.Report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderQualityReport(res.Report))
				fmt.Fprintf(cmd.OutOrStdout(), "\nReport saved to %s\n", res.ReportPath)
			}

			if code := domain.ExitCode(res.Report, cfg.Quality.FailOnIssues); code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	f.StringVar(&flags.GitLab.URL, "gitlab-url", "", "GitLab base URL")
	f.StringVar(&flags.GitLab.Token, "token", "", "GitLab access token")
	f.StringVar(&flags.Project.ID, "project-id", "", "Project path on GitLab (group/name)")
	f.StringVar(&flags.Project.HW, "project-hw", "", "Homework subproject")
	f.StringVar(&flags.Project.Branch, "branch", "", "Branch to check out (default \"main\")")
	f.StringVar(&flags.Workspace.Path, "workspace", "", "Directory repositories are cloned into")
	f.StringVar(&flags.Checkstyle.ConfigPath, "checkstyle-config", "", "Custom Checkstyle configuration")
	f.StringVar(&flags.Checkstyle.JarPath, "checkstyle-jar", "", "Checkstyle jar to use instead of downloading one")
	f.StringVar(&flags.Checkstyle.Version, "checkstyle-version", "", "Checkstyle release to download")
	f.StringVar(&flags.Git.SSHURL, "ssh-url", "", "Clone over SSH from this URL")
	f.BoolVar(&flags.Git.AcceptHostKey, "accept-hostkey", false, "Accept unknown SSH host keys")
	f.StringVar(&flags.Git.Username, "username", "", "HTTP username")
	f.StringVar(&flags.Git.Password, "password", "", "HTTP password")
	f.BoolVar(&flags.Quality.FailOnIssues, "fail-on-issues", false, "Exit 1 when the build or style check fails")
	f.StringVar(&flags.Output.ResultsDir, "results-dir", "", "Directory for JSON reports (default \"quality-check-results\")")
	f.StringVar(&localPath, "path", "", "Check an existing checkout instead of cloning")
	f.BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	f.BoolVar(&includeRaw, "include-raw", false, "Keep raw log text in the report")

	return cmd
}

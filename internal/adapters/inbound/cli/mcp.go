package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/openkraft/javaqc/internal/adapters/inbound/mcp"
	"github.com/openkraft/javaqc/internal/adapters/outbound/report"
	"github.com/openkraft/javaqc/internal/domain"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the javaqc MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var (
		repoPath   string
		resultsDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start javaqc MCP server (stdio)",
		Long:  "Start the javaqc MCP server using stdio transport. This lets AI coding assistants parse build logs and Checkstyle reports and read past quality reports.",
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(repoPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			s := mcpadapter.NewJavaQCMCPServer(mcpadapter.Deps{
				RepoPath:   abs,
				ResultsDir: resultsDir,
				Parser:     newParseService(),
				Store:      report.New(),
			})
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&repoPath, "path", ".", "Repository whose logs are served (defaults to current working directory)")
	cmd.Flags().StringVar(&resultsDir, "results-dir", domain.DefaultResultsDir, "Directory holding quality reports")

	return cmd
}

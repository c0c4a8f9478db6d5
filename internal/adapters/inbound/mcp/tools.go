package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/javaqc/internal/adapters/outbound/checkstyle"
	"github.com/openkraft/javaqc/internal/adapters/outbound/javac"
	"github.com/openkraft/javaqc/internal/application"
)

func registerTools(s *server.MCPServer, deps Deps) {
	// 1. javaqc_parse_build_log
	s.AddTool(
		mcplib.NewTool("javaqc_parse_build_log",
			mcplib.WithDescription("Parse a javac build transcript into files, compilation results, located errors and a summary"),
			mcplib.WithString("path", mcplib.Description("Log path, absolute or relative to the repository. Defaults to the newest file in build-logs/")),
			mcplib.WithBoolean("include_raw", mcplib.Description("Include the transcript text in raw_content")),
		),
		handleParseLog(deps, javac.LogDir, application.KindBuild),
	)

	// 2. javaqc_parse_style_log
	s.AddTool(
		mcplib.NewTool("javaqc_parse_style_log",
			mcplib.WithDescription("Parse a Checkstyle report transcript into checked files, violations and a summary"),
			mcplib.WithString("path", mcplib.Description("Report path, absolute or relative to the repository. Defaults to the newest file in checkstyle-reports/")),
			mcplib.WithBoolean("include_raw", mcplib.Description("Include the transcript text in raw_content")),
		),
		handleParseLog(deps, checkstyle.ReportDir, application.KindStyle),
	)

	// 3. javaqc_parse_text
	s.AddTool(
		mcplib.NewTool("javaqc_parse_text",
			mcplib.WithDescription("Parse transcript text passed inline. The kind is detected from its banners unless given"),
			mcplib.WithString("text", mcplib.Required(), mcplib.Description("Build log or Checkstyle report text")),
			mcplib.WithString("kind", mcplib.Description("build or style")),
		),
		handleParseText(deps),
	)

	// 4. javaqc_latest_report
	s.AddTool(
		mcplib.NewTool("javaqc_latest_report",
			mcplib.WithDescription("Returns the most recent quality-check report as JSON"),
		),
		handleLatestReport(deps),
	)

	// 5. javaqc_history
	s.AddTool(
		mcplib.NewTool("javaqc_history",
			mcplib.WithDescription("Returns past quality-check runs with statuses and counts, oldest first"),
		),
		handleHistory(deps),
	)
}

func handleParseLog(deps Deps, logDir string, kind application.LogKind) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		path, _ := args["path"].(string)
		includeRaw, _ := args["include_raw"].(bool)
		opts := application.ParseOptions{IncludeRaw: includeRaw}

		if path == "" {
			newest, err := newestLog(filepath.Join(deps.RepoPath, logDir))
			if err != nil {
				return errorResult(err.Error()), nil
			}
			path = newest
		} else if !filepath.IsAbs(path) {
			path = filepath.Join(deps.RepoPath, path)
		}

		if kind == application.KindBuild {
			r, err := deps.Parser.ParseBuildLog(path, opts)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			return jsonResult(r)
		}
		r, err := deps.Parser.ParseStyleLog(path, opts)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(r)
	}
}

func handleParseText(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		kind, _ := request.GetArguments()["kind"].(string)

		parsed := deps.Parser.ParseText(text, application.LogKind(kind), application.ParseOptions{})
		if parsed.Err != "" {
			return errorResult(parsed.Err), nil
		}
		return jsonResult(parsed)
	}
}

func handleLatestReport(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		report, err := deps.Store.Latest(deps.ResultsDir)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(report)
	}
}

func handleHistory(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		entries, err := deps.Store.History(deps.ResultsDir)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if len(entries) == 0 {
			return textResult("No quality-check runs recorded yet."), nil
		}
		return jsonResult(entries)
	}
}

// newestLog picks the lexically last .log file in dir; runner file names
// embed a sortable timestamp.
func newestLog(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no logs found in %s", dir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const latestReportURI = "javaqc://reports/latest"

func registerResources(s *server.MCPServer, deps Deps) {
	s.AddResource(
		mcplib.NewResource(
			latestReportURI,
			"Latest Quality Report",
			mcplib.WithResourceDescription("The most recent quality-check report written by javaqc run"),
			mcplib.WithMIMEType("application/json"),
		),
		handleLatestReportResource(deps),
	)
}

func handleLatestReportResource(deps Deps) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report, err := deps.Store.Latest(deps.ResultsDir)
		if err != nil {
			return nil, err
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      latestReportURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/javaqc/internal/application"
	"github.com/openkraft/javaqc/internal/domain"
)

const (
	serverName    = "javaqc"
	serverVersion = "0.1.0"
)

// Deps are the services the MCP handlers call into.
type Deps struct {
	// RepoPath is the checkout whose build-logs and checkstyle-reports are read.
	RepoPath   string
	ResultsDir string
	Parser     *application.ParseService
	Store      domain.ReportStore
}

// NewJavaQCMCPServer creates a new MCP server with all javaqc tools and
// resources registered.
func NewJavaQCMCPServer(deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, deps)
	registerResources(s, deps)

	return s
}

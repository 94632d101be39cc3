// Package mcp exposes sitewright over the Model Context Protocol so
// agents can generate, modify and preview sites as tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/sitewright/sitewright/internal/compose"
	"github.com/sitewright/sitewright/internal/generate"
	"github.com/sitewright/sitewright/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes site generation tools.
type Server struct {
	store     *store.Store
	generator *generate.Service
	composer  *compose.Composer
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server. The generator may be nil when no
// LLM provider is configured; generation tools then report that state
// instead of failing at startup.
func NewServer(st *store.Store, generator *generate.Service) *Server {
	s := &Server{
		store:     st,
		generator: generator,
		composer:  compose.New(),
	}

	s.mcp = server.NewMCPServer(
		"sitewright",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(generateSiteTool, s.handleGenerateSite)
	s.mcp.AddTool(modifySiteTool, s.handleModifySite)
	s.mcp.AddTool(listProjectsTool, s.handleListProjects)
	s.mcp.AddTool(previewPageTool, s.handlePreviewPage)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

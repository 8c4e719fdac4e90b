// Package mcp exposes the field-extraction engine to AI agents over the
// Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes field extraction tools.
type Server struct {
	mcp *server.MCPServer
}

// NewServer creates a new MCP server.
func NewServer() *Server {
	s := &Server{}

	s.mcp = server.NewMCPServer(
		"callbot",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(extractFieldsTool, s.handleExtractFields)
	s.mcp.AddTool(orderContentTool, s.handleOrderContent)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

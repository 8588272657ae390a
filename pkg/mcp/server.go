package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/mzafar/homehub/pkg/db"
)

// Server wraps the MCP server with read and act tools over the dashboard's
// store, so assistants can inspect the home and enqueue commands through the
// same queue contract the HTTP API uses.
type Server struct {
	mcpServer *server.MCPServer
	database  *db.DB
}

// NewServer creates a new MCP server over the given database.
func NewServer(database *db.DB) *Server {
	s := &Server{
		database: database,
	}

	// Create MCP server
	s.mcpServer = server.NewMCPServer(
		"homehub",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register all tools
	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

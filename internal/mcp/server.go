package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/layoutgen/internal/history"
	"github.com/ziadkadry99/layoutgen/internal/orchestrator"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Jobs submits generation jobs and waits for them.
type Jobs interface {
	Submit(ctx context.Context, req orchestrator.Request) (history.Job, error)
	Await(ctx context.Context, id int64) (history.Job, error)
}

// Server wraps an MCP server that lets agents generate layouts and read the history.
type Server struct {
	store *history.Store
	jobs  Jobs
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(store *history.Store, jobs Jobs) *Server {
	s := &Server{
		store: store,
		jobs:  jobs,
	}

	s.mcp = server.NewMCPServer(
		"layoutgen",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(generateLayoutTool, s.handleGenerateLayout)
	s.mcp.AddTool(listJobsTool, s.handleListJobs)
	s.mcp.AddTool(getJobTool, s.handleGetJob)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

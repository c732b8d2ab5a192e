// Package mcp exposes the blog's search surface as MCP tools over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/catpaladin/inkwell/internal/search"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server exposing blog search tools.
type Server struct {
	engine     *search.Engine
	contentDir string
	mcp        *server.MCPServer
}

// NewServer creates the MCP server over a search engine and the content
// directory the posts live in.
func NewServer(engine *search.Engine, contentDir string) *Server {
	s := &Server{
		engine:     engine,
		contentDir: contentDir,
	}

	s.mcp = server.NewMCPServer(
		"inkwell",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(searchPostsTool, s.handleSearchPosts)
	s.mcp.AddTool(getPostTool, s.handleGetPost)
}

// Serve starts the MCP server on stdio. Stdout carries protocol messages;
// all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

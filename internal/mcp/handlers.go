package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) handleSearchPosts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	s.engine.Open()
	results := s.engine.Query(query)
	if len(results) == 0 {
		return mcp.NewToolResultText("No posts matched. Queries need at least two characters."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d post(s):\n\n", len(results))
	for i, entry := range results {
		fmt.Fprintf(&b, "%d. %s (%s)\n   %s\n", i+1, entry.Title, entry.Date, entry.Permalink)
		if len(entry.Tags) > 0 {
			fmt.Fprintf(&b, "   tags: %s\n", strings.Join(entry.Tags, ", "))
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGetPost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	// Keep lookups inside the content directory.
	clean := filepath.Clean(path)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid post path %q", path)), nil
	}

	source, err := os.ReadFile(filepath.Join(s.contentDir, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return mcp.NewToolResultError(fmt.Sprintf("no post at %q", path)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("reading post: %v", err)), nil
	}

	return mcp.NewToolResultText(string(source)), nil
}

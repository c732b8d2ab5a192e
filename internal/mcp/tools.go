package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchPostsTool defines the search_posts MCP tool.
var searchPostsTool = mcp.NewTool("search_posts",
	mcp.WithDescription("Search blog posts by title, tags, and content. Returns ranked matches with permalinks."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Search query, two characters minimum"),
	),
)

// getPostTool defines the get_post MCP tool.
var getPostTool = mcp.NewTool("get_post",
	mcp.WithDescription("Get the full markdown source of a blog post."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Post path relative to the content directory, e.g. posts/go-channels.md"),
	),
)

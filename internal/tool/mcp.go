package tool

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Definition describes kagi_search for tools/list.
func Definition() mcp.Tool {
	return mcp.NewTool(Name,
		mcp.WithDescription(Description),
		mcp.WithString(ArgQuery,
			mcp.Required(),
			mcp.Description("Search query string"),
		),
		mcp.WithNumber(ArgLimit,
			mcp.Description("Maximum results to return (1-20, default 5)"),
		),
	)
}

// Handle adapts Execute to the MCP tool handler signature. The returned error
// is always nil: failures are reported in the text content.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(t.Execute(ctx, req.GetArguments())), nil
}

// Register adds kagi_search to srv.
func Register(srv *server.MCPServer, t *SearchTool) {
	srv.AddTool(Definition(), t.Handle)
}

// NewServer builds an MCP server exposing kagi_search.
func NewServer(version string, t *SearchTool) *server.MCPServer {
	srv := server.NewMCPServer(PluginName, version,
		server.WithToolCapabilities(false),
		server.WithInstructions(PluginDescription),
		server.WithRecovery(),
	)
	Register(srv, t)
	return srv
}
